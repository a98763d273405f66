package core

import (
	"encoding/xml"
	"fmt"

	"github.com/spf13/cast"
)

// Element is one XML start tag with its attributes and source position.
type Element struct {
	Name   string
	Attrs  map[string]string
	Line   int
	Column int
}

func NewElement(se xml.StartElement, line int, column int) *Element {
	el := &Element{
		Name:   se.Name.Local,
		Attrs:  make(map[string]string, len(se.Attr)),
		Line:   line,
		Column: column,
	}
	for _, a := range se.Attr {
		// first occurrence wins
		if _, ok := el.Attrs[a.Name.Local]; !ok {
			el.Attrs[a.Name.Local] = a.Value
		}
	}
	return el
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

func (e *Element) Optional(name string) string {
	return e.Attrs[name]
}

func (e *Element) Required(name string) (string, error) {
	v, ok := e.Attrs[name]
	if !ok || v == "" {
		return "", e.Errorf(name, "missing required attribute %q", name)
	}
	return v, nil
}

// Bool reads an optional boolean attribute, absent means false.
func (e *Element) Bool(name string) (bool, error) {
	v, ok := e.Attrs[name]
	if !ok || v == "" {
		return false, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, e.Errorf(name, "invalid boolean %q", v)
	}
	return b, nil
}

func (e *Element) Int(name string) (int, error) {
	v, err := e.Required(name)
	if err != nil {
		return 0, err
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, e.Errorf(name, "invalid integer %q", v)
	}
	return n, nil
}

func (e *Element) Errorf(attr string, format string, args ...any) *TagError {
	return &TagError{
		Tag:    e.Name,
		Attr:   attr,
		Line:   e.Line,
		Column: e.Column,
		Reason: fmt.Sprintf(format, args...),
	}
}

// TagError is a tag-local schema defect. The offending element is dropped
// and generation continues.
type TagError struct {
	Tag    string
	Attr   string
	Line   int
	Column int
	Reason string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("<%s> at %d:%d: %s", e.Tag, e.Line, e.Column, e.Reason)
}
