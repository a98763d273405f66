package core

import (
	"sort"

	"github.com/vuuvv/errors"
	"github.com/vuuvv/wiregen/utils"
)

// Fact is the typed result of parsing one XML tag.
type Fact interface {
	Parse(el *Element) error
}

type FactParseFunc func(el *Element) (Fact, error)

var factParsers = make(map[string]FactParseFunc)

func RegisterFactFactory[T any](name string) {
	fn := func(el *Element) (Fact, error) {
		var v T
		fact, ok := utils.CastTo[Fact](&v)
		if !ok {
			return nil, errors.Errorf("Fact type [%s] not match: %T", name, &v)
		}
		if err := fact.Parse(el); err != nil {
			return nil, err
		}
		return fact, nil
	}
	factParsers[name] = fn
}

// ParseFact parses el with the processor registered for its tag. The second
// result is false when no processor is registered.
func ParseFact(el *Element) (Fact, bool, error) {
	fn, ok := factParsers[el.Name]
	if !ok {
		return nil, false, nil
	}
	fact, err := fn(el)
	return fact, true, err
}

func RegisteredTags() []string {
	names := make([]string, 0, len(factParsers))
	for name := range factParsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
