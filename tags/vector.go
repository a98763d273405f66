package tags

import (
	"fmt"

	"github.com/vuuvv/wiregen/core"
)

// Vector declares a Vec<T> field counted by its length expression.
type Vector struct {
	field *core.Field
}

func (this *Vector) Parse(el *core.Element) error {
	name, err := el.Required("name")
	if err != nil {
		return err
	}
	typ, err := el.Required("type")
	if err != nil {
		return err
	}
	length, err := el.Required("length")
	if err != nil {
		return err
	}
	this.field = &core.Field{
		Name:      name,
		Type:      fmt.Sprintf("Vec<%s>", typ),
		Length:    length,
		Condition: condition(el),
		Line:      el.Line,
	}
	return nil
}

func (this *Vector) Decl() *core.Field {
	return this.field
}

func registerVector() {
	core.RegisterFactFactory[Vector]("vector")
}
