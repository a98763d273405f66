package tags

import (
	"fmt"
	"strings"

	"github.com/vuuvv/wiregen/core"
)

// FieldFact is implemented by every tag that declares a field.
type FieldFact interface {
	core.Fact
	Decl() *core.Field
}

type Field struct {
	field *core.Field
}

func (this *Field) Parse(el *core.Element) error {
	name, err := el.Required("name")
	if err != nil {
		return err
	}
	typ, err := el.Required("type")
	if err != nil {
		return err
	}
	key, value := el.Optional("genericKey"), el.Optional("genericValue")
	switch {
	case key != "" && value != "":
		typ = fmt.Sprintf("%s<%s, %s>", typ, key, value)
	case el.Optional("genericType") != "":
		typ = fmt.Sprintf("%s<%s>", typ, el.Optional("genericType"))
	}
	this.field = &core.Field{
		Name:      name,
		Type:      typ,
		Length:    el.Optional("length"),
		Condition: condition(el),
		Param:     el.Optional("param"),
		Line:      el.Line,
	}
	return nil
}

// condition reads the optional presence test of a field declaration. An
// enclosing if or mask branch is combined with it when the branch closes.
func condition(el *core.Element) core.ConditionKey {
	if src := strings.TrimSpace(el.Optional("condition")); src != "" {
		return core.IfKey(src, false)
	}
	return core.Always
}

func (this *Field) Decl() *core.Field {
	return this.field
}

func registerField() {
	core.RegisterFactFactory[Field]("field")
}
