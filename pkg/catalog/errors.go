package catalog

import (
	"errors"
	"fmt"
)

var ErrEmptyRelease = errors.New("release has no assets")

type UnknownTemplateError struct {
	Template string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("no template with name '%s' exists", e.Template)
}

type UnsupportedVersionError struct {
	Template string
	Version  string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("the %s template does not support %s", e.Template, e.Version)
}
