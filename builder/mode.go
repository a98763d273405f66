package builder

type Mode int

const (
	ModeOutsideType Mode = iota
	ModeSection
	ModeType
	ModeSwitch
	ModeCase
	ModeIf
	ModeIfTrue
	ModeIfFalse
	ModeMaskMap
	ModeMask
	ModeField
	ModeEnum
	ModeLeaf
	ModePassthrough
	ModeSkipped
)

var modeNames = map[Mode]string{
	ModeOutsideType: "outside-type",
	ModeSection:     "section",
	ModeType:        "inside-type",
	ModeSwitch:      "inside-switch",
	ModeCase:        "inside-case",
	ModeIf:          "inside-if",
	ModeIfTrue:      "inside-if-true",
	ModeIfFalse:     "inside-if-false",
	ModeMaskMap:     "inside-maskmap",
	ModeMask:        "inside-mask",
	ModeField:       "inside-field",
	ModeEnum:        "inside-enum",
	ModeLeaf:        "leaf",
	ModePassthrough: "passthrough",
	ModeSkipped:     "skipped",
}

func (m Mode) String() string {
	return modeNames[m]
}

// acceptsFields reports whether field declarations may appear directly in m.
func (m Mode) acceptsFields() bool {
	switch m {
	case ModeType, ModeCase, ModeIfTrue, ModeIfFalse, ModeMask, ModeMaskMap:
		return true
	}
	return false
}
