package tags

import "sync"

var once sync.Once

// Register installs every tag processor in the core registry.
func Register() {
	once.Do(func() {
		registerSections()
		registerType()
		registerEnum()
		registerField()
		registerVector()
		registerTable()
		registerSwitch()
		registerSubfield()
		registerAlign()
		registerIf()
		registerMaskMap()
	})
}
