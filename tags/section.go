package tags

import "github.com/vuuvv/wiregen/core"

// Section switches the category of the declarations that follow.
type Section struct {
	Category core.Category
}

func (this *Section) Parse(el *core.Element) error {
	this.Category = core.Category(el.Name)
	return nil
}

func registerSections() {
	core.RegisterFactFactory[Section](string(core.CategoryEnums))
	core.RegisterFactFactory[Section](string(core.CategoryTypes))
	core.RegisterFactFactory[Section](string(core.CategoryGameActions))
	core.RegisterFactFactory[Section](string(core.CategoryGameEvents))
	core.RegisterFactFactory[Section](string(core.CategoryC2S))
	core.RegisterFactFactory[Section](string(core.CategoryS2C))
	core.RegisterFactFactory[Section](string(core.CategoryPackets))
	core.RegisterFactFactory[Section](string(core.CategoryNetwork))
}
