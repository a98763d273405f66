package tags

import "github.com/vuuvv/wiregen/core"

type If struct {
	Test string
}

func (this *If) Parse(el *core.Element) (err error) {
	this.Test, err = el.Required("test")
	return err
}

// Branch opens the true or false arm of an enclosing if.
type Branch struct {
	Negated bool
}

func (this *Branch) Parse(el *core.Element) error {
	this.Negated = el.Name == "false"
	return nil
}

func registerIf() {
	core.RegisterFactFactory[If]("if")
	core.RegisterFactFactory[Branch]("true")
	core.RegisterFactFactory[Branch]("false")
}
