package wire

import (
	"github.com/vuuvv/errors"
)

// MaxPackedCount is the largest count a PHashTable header can hold.
const MaxPackedCount = 0xFFFFFF

// Count checks a decoded element count before anything is allocated for it.
// size is the smallest wire size of one element. Zero means the element may
// take no bytes at all and only the sign of n is checked.
func (c *Reader) Count(n int, size int) error {
	if n < 0 {
		return errors.Errorf("wire: negative count %d", n)
	}
	if size > 0 && n > c.Remaining()/size {
		return errors.Wrapf(ErrShortBuffer, "count %d of %d byte elements exceeds %d remaining bytes", n, size, c.Remaining())
	}
	return nil
}

// ReadListCount reads the u32 count of a PackableList whose elements take at
// least size bytes.
func (c *Reader) ReadListCount(size int) (int, error) {
	v, err := c.ReadU32()
	if err != nil {
		return 0, err
	}
	return int(v), c.Count(int(v), size)
}

// ReadHashTableCount reads the u16 count and u16 bucket size of a
// PackableHashTable. The bucket size is not kept.
func (c *Reader) ReadHashTableCount(size int) (int, error) {
	n, err := c.ReadU16()
	if err != nil {
		return 0, err
	}
	if _, err = c.ReadU16(); err != nil {
		return 0, err
	}
	return int(n), c.Count(int(n), size)
}

// ReadPackedCount reads the u32 header of a PHashTable, the count is its
// low 24 bits.
func (c *Reader) ReadPackedCount(size int) (int, error) {
	v, err := c.ReadU32()
	if err != nil {
		return 0, err
	}
	n := int(v & MaxPackedCount)
	return n, c.Count(n, size)
}

func (w *Writer) WriteListCount(n int) error {
	return w.WriteU32(uint32(n))
}

// WriteHashTableCount writes n as both count and bucket size.
func (w *Writer) WriteHashTableCount(n int) error {
	if n > 0xFFFF {
		return errors.Errorf("wire: hash table of %d entries exceeds u16 count", n)
	}
	if err := w.WriteU16(uint16(n)); err != nil {
		return err
	}
	return w.WriteU16(uint16(n))
}

func (w *Writer) WritePackedCount(n int) error {
	if n > MaxPackedCount {
		return errors.Errorf("wire: table of %d entries exceeds packed count", n)
	}
	return w.WriteU32(uint32(n))
}
