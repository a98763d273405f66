package tags

import "github.com/vuuvv/wiregen/core"

type TypeOpen struct {
	Name      string
	Text      string
	Primitive bool
	Parent    string
	Templated string
}

func (this *TypeOpen) Parse(el *core.Element) (err error) {
	if this.Name, err = el.Required("name"); err != nil {
		return err
	}
	if this.Primitive, err = el.Bool("primitive"); err != nil {
		return err
	}
	this.Text = el.Optional("text")
	this.Parent = el.Optional("parent")
	this.Templated = el.Optional("templated")
	return nil
}

func registerType() {
	core.RegisterFactFactory[TypeOpen]("type")
}
