package tags

import (
	"fmt"

	"github.com/vuuvv/wiregen/core"
)

// Table declares a Table<K, V> field counted by its length expression.
type Table struct {
	field *core.Field
}

func (this *Table) Parse(el *core.Element) error {
	name, err := el.Required("name")
	if err != nil {
		return err
	}
	key, err := el.Required("key")
	if err != nil {
		return err
	}
	value, err := el.Required("value")
	if err != nil {
		return err
	}
	length, err := el.Required("length")
	if err != nil {
		return err
	}
	this.field = &core.Field{
		Name:      name,
		Type:      fmt.Sprintf("Table<%s, %s>", key, value),
		Length:    length,
		Condition: condition(el),
		Line:      el.Line,
	}
	return nil
}

func (this *Table) Decl() *core.Field {
	return this.field
}

func registerTable() {
	core.RegisterFactFactory[Table]("table")
}
