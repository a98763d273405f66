package core

// Category is the protocol section a type or enum was declared in. Each
// category is emitted as its own package directory.
type Category string

const (
	CategoryNone        Category = ""
	CategoryEnums       Category = "enums"
	CategoryTypes       Category = "types"
	CategoryGameActions Category = "gameactions"
	CategoryGameEvents  Category = "gameevents"
	CategoryC2S         Category = "c2s"
	CategoryS2C         Category = "s2c"
	CategoryPackets     Category = "packets"
	CategoryNetwork     Category = "network"
)

// Categories lists every concrete category in emission order.
var Categories = []Category{
	CategoryEnums,
	CategoryTypes,
	CategoryGameActions,
	CategoryGameEvents,
	CategoryC2S,
	CategoryS2C,
	CategoryPackets,
	CategoryNetwork,
}

// NonNone maps declarations found outside any section to the shared types.
func (c Category) NonNone() Category {
	if c == CategoryNone {
		return CategoryTypes
	}
	return c
}

func (c Category) Dir() string {
	return string(c.NonNone())
}

// Layer orders packages so that a category may only depend on lower layers or itself.
func (c Category) Layer() int {
	switch c.NonNone() {
	case CategoryEnums:
		return 0
	case CategoryTypes:
		return 1
	default:
		return 2
	}
}

func (c Category) String() string {
	return c.Dir()
}
