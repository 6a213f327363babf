package config

import (
	"fmt"
	"strings"
)

const mixinSuffix = "-mixin"

type Template struct {
	Name        string
	Description string
	// HasMixinVariant reports whether a "<name>-mixin" build is published.
	HasMixinVariant bool
}

type Templates []*Template

var KnownTemplates = Templates{
	{
		Name:        "forge",
		Description: "A Forge-only mod project.",
	},
	{
		Name:            "forge-fabric",
		Description:     "A multiplatform mod project targeting Forge and Fabric.",
		HasMixinVariant: true,
	},
	{
		Name:            "forge-quilt",
		Description:     "A multiplatform mod project targeting Forge and Quilt.",
		HasMixinVariant: true,
	},
	{
		Name:            "forge-fabric-like",
		Description:     "A multiplatform mod project targeting Forge and a shared Fabric/Quilt module.",
		HasMixinVariant: true,
	},
	{
		Name:            "forge-fabric-quilt",
		Description:     "A multiplatform mod project targeting Forge, Fabric and Quilt.",
		HasMixinVariant: true,
	},
}

func (l Templates) Find(name string) *Template {
	for _, t := range l {
		if t.Name == strings.ToLower(name) {
			return t
		}
	}
	return nil
}

// Describe returns the description of a catalog template name, including
// mixin variants of known templates.
func (l Templates) Describe(catalogName string) string {
	if t := l.Find(catalogName); t != nil {
		return t.Description
	}
	base, found := strings.CutSuffix(catalogName, mixinSuffix)
	if t := l.Find(base); found && t != nil && t.HasMixinVariant {
		return strings.TrimSuffix(t.Description, ".") + ", using Mixin."
	}
	return ""
}

// CatalogName returns the name a template is published under in the
// release, selecting the mixin variant if requested. Unknown templates are
// passed through so that newly published templates can be used.
func (l Templates) CatalogName(name string, mixin bool) (string, error) {
	name = strings.ToLower(name)
	if !mixin || strings.HasSuffix(name, mixinSuffix) {
		return name, nil
	}
	if t := l.Find(name); t != nil && !t.HasMixinVariant {
		return "", fmt.Errorf("the %s template has no mixin variant", t.Name)
	}
	return name + mixinSuffix, nil
}
