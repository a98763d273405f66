package tags

import (
	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/log"
	"go.uber.org/zap"
)

type EnumOpen struct {
	Name   string
	Text   string
	Parent string
	Mask   bool
}

func (this *EnumOpen) Parse(el *core.Element) (err error) {
	if this.Name, err = el.Required("name"); err != nil {
		return err
	}
	if this.Parent, err = el.Required("parent"); err != nil {
		return err
	}
	if this.Mask, err = el.Bool("mask"); err != nil {
		return err
	}
	this.Text = el.Optional("text")
	return nil
}

// EnumValue is one named value of an enum. The value may list several
// literals, each becomes a constant sharing the name.
type EnumValue struct {
	Name   string
	Values []int64
}

func (this *EnumValue) Parse(el *core.Element) (err error) {
	if this.Name, err = el.Required("name"); err != nil {
		return err
	}
	raw, err := el.Required("value")
	if err != nil {
		return err
	}
	this.Values = parseValues(el, raw)
	if len(this.Values) == 0 {
		return el.Errorf("value", "no usable value in %q", raw)
	}
	return nil
}

// parseValues keeps every literal that parses and logs the rest.
func parseValues(el *core.Element, raw string) []int64 {
	values, dropped := core.ParseValueList(raw)
	for _, tok := range dropped {
		log.Warn("skipping unparseable value token",
			zap.String("tag", el.Name),
			zap.String("token", tok),
			zap.Int("line", el.Line),
		)
	}
	return values
}

func registerEnum() {
	core.RegisterFactFactory[EnumOpen]("enum")
	core.RegisterFactFactory[EnumValue]("value")
}
