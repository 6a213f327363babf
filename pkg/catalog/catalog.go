// Package catalog indexes the assets of a template release by template name
// and Minecraft version.
package catalog

import (
	"iter"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Catalog is the template -> version -> asset index of one release. It is
// never modified after Build returns.
type Catalog struct {
	templates   map[string]map[string]*Asset
	overwritten []*Asset
}

// Build indexes the given release assets. If two assets resolve to the same
// template and version, the later one wins.
func Build(assets []Asset) (*Catalog, error) {
	if len(assets) == 0 {
		return nil, ErrEmptyRelease
	}
	c := &Catalog{templates: make(map[string]map[string]*Asset)}
	for i := range assets {
		asset := assets[i]
		template, version := ParseAssetName(asset.Name)
		versions, ok := c.templates[template]
		if !ok {
			versions = make(map[string]*Asset)
			c.templates[template] = versions
		}
		if prev, exists := versions[version]; exists {
			c.overwritten = append(c.overwritten, prev)
		}
		versions[version] = &asset
	}
	return c, nil
}

func (c *Catalog) versionsOf(template string) (map[string]*Asset, error) {
	versions, ok := c.templates[template]
	if !ok {
		return nil, &UnknownTemplateError{Template: template}
	}
	return versions, nil
}

// Templates yields every template name once, in no particular order.
func (c *Catalog) Templates() iter.Seq[string] {
	return maps.Keys(c.templates)
}

// Versions yields the Minecraft versions supported by template, in no
// particular order.
func (c *Catalog) Versions(template string) (iter.Seq[string], error) {
	versions, err := c.versionsOf(template)
	if err != nil {
		return nil, err
	}
	return maps.Keys(versions), nil
}

func (c *Catalog) IsSupported(template, version string) (bool, error) {
	versions, err := c.versionsOf(template)
	if err != nil {
		return false, err
	}
	_, ok := versions[version]
	return ok, nil
}

func (c *Catalog) Resolve(template, version string) (*Asset, error) {
	versions, err := c.versionsOf(template)
	if err != nil {
		return nil, err
	}
	asset, ok := versions[version]
	if !ok {
		return nil, &UnsupportedVersionError{Template: template, Version: version}
	}
	return asset, nil
}

// Overwritten returns the assets that were replaced by a later asset
// resolving to the same template and version.
func (c *Catalog) Overwritten() []Asset {
	ret := make([]Asset, len(c.overwritten))
	for i, a := range c.overwritten {
		ret[i] = *a
	}
	return ret
}

func (c *Catalog) Len() int {
	return len(c.templates)
}

func (c *Catalog) SortedTemplates() []string {
	return slices.Sorted(c.Templates())
}

func (c *Catalog) SortedVersions(template string) ([]string, error) {
	versions, err := c.Versions(template)
	if err != nil {
		return nil, err
	}
	ret := slices.Collect(versions)
	SortVersions(ret)
	return ret, nil
}

// Search returns the sorted template names containing query.
func (c *Catalog) Search(query string) []string {
	ret := make([]string, 0)
	for t := range c.Templates() {
		if strings.Contains(t, query) {
			ret = append(ret, t)
		}
	}
	sort.Strings(ret)
	return ret
}

// SortVersions orders Minecraft versions numerically ("1.9" before "1.16").
// Versions that cannot be parsed come first, in lexical order.
func SortVersions(versions []string) {
	parsed := make(map[string]*semver.Version, len(versions))
	for _, v := range versions {
		if sv, err := semver.NewVersion(v); err == nil {
			parsed[v] = sv
		}
	}
	sort.SliceStable(versions, func(i, j int) bool {
		vi, vj := parsed[versions[i]], parsed[versions[j]]
		switch {
		case vi == nil && vj == nil:
			return versions[i] < versions[j]
		case vi == nil:
			return true
		case vj == nil:
			return false
		case vi.Equal(vj):
			return versions[i] < versions[j]
		default:
			return vi.LessThan(vj)
		}
	})
}
