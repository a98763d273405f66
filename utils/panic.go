package utils

import (
	"github.com/vuuvv/wiregen/log"
)

// Catch recovers a panic, logs it with its stack and hands it to handler.
// It must be deferred directly.
func Catch(handler func(reason any)) {
	if r := recover(); r != nil {
		log.Error(r)
		handler(r)
	}
}
