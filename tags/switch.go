package tags

import "github.com/vuuvv/wiregen/core"

type Switch struct {
	Discriminant string
}

func (this *Switch) Parse(el *core.Element) (err error) {
	this.Discriminant, err = el.Required("name")
	return err
}

// Case routes every listed raw value to the same variant. Tokens that do not
// parse are skipped with a warning.
type Case struct {
	Values []int64
}

func (this *Case) Parse(el *core.Element) error {
	raw, err := el.Required("value")
	if err != nil {
		return err
	}
	this.Values = parseValues(el, raw)
	if len(this.Values) == 0 {
		return el.Errorf("value", "no usable case value in %q", raw)
	}
	return nil
}

func registerSwitch() {
	core.RegisterFactFactory[Switch]("switch")
	core.RegisterFactFactory[Case]("case")
}
