package tags

import (
	"strings"

	"github.com/vuuvv/wiregen/core"
)

var alignNames = map[string]int{
	"WORD":  2,
	"DWORD": 4,
	"QWORD": 8,
}

// Align marks padding to the next Boundary bytes. Either boundary="4" or
// type="DWORD" is accepted.
type Align struct {
	Boundary int
}

func (this *Align) Parse(el *core.Element) error {
	if _, ok := el.Attr("boundary"); ok {
		n, err := el.Int("boundary")
		if err != nil {
			return err
		}
		if n <= 0 || n&(n-1) != 0 {
			return el.Errorf("boundary", "boundary must be a power of two, got %d", n)
		}
		this.Boundary = n
		return nil
	}
	name, err := el.Required("type")
	if err != nil {
		return el.Errorf("boundary", "missing required attribute \"boundary\" or \"type\"")
	}
	n, ok := alignNames[strings.ToUpper(name)]
	if !ok {
		return el.Errorf("type", "unknown alignment %q", name)
	}
	this.Boundary = n
	return nil
}

func registerAlign() {
	core.RegisterFactFactory[Align]("align")
}
