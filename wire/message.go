package wire

import (
	"slices"

	"github.com/vuuvv/errors"
	"golang.org/x/exp/constraints"
)

// Message is implemented by every generated structure.
type Message interface {
	Read(r *Reader) error
	Write(w *Writer) error
}

// Unmarshal decodes data into m. Trailing bytes are not an error.
func Unmarshal(data []byte, m Message) error {
	return errors.WithStack(m.Read(NewReader(data)))
}

func Marshal(m Message) ([]byte, error) {
	w := NewWriter()
	if err := m.Write(w); err != nil {
		return nil, errors.WithStack(err)
	}
	return w.Bytes(), nil
}

// Deref returns the pointed-to value, or the zero value for nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
