package tags

import "github.com/vuuvv/wiregen/core"

type Subfield struct {
	Subfield *core.Subfield
}

func (this *Subfield) Parse(el *core.Element) error {
	name, err := el.Required("name")
	if err != nil {
		return err
	}
	typ, err := el.Required("type")
	if err != nil {
		return err
	}
	value, err := el.Required("value")
	if err != nil {
		return err
	}
	this.Subfield = &core.Subfield{Name: name, Type: typ, Value: value}
	return nil
}

func registerSubfield() {
	core.RegisterFactFactory[Subfield]("subfield")
}
