package tags

import "github.com/vuuvv/wiregen/core"

// MaskMap names the flags field tested by the masks it contains.
type MaskMap struct {
	Field string
}

func (this *MaskMap) Parse(el *core.Element) (err error) {
	this.Field, err = el.Required("name")
	return err
}

type Mask struct {
	Value string
}

func (this *Mask) Parse(el *core.Element) (err error) {
	this.Value, err = el.Required("value")
	return err
}

func registerMaskMap() {
	core.RegisterFactFactory[MaskMap]("maskmap")
	core.RegisterFactFactory[Mask]("mask")
}
