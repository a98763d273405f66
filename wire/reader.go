package wire

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf16"

	"github.com/vuuvv/errors"
	"golang.org/x/text/encoding/charmap"
)

// Reader decodes little-endian values from a byte slice.
type Reader struct {
	Data  []byte
	Pos   int
	bases []int
}

func NewReader(data []byte) *Reader {
	return &Reader{Data: data}
}

func (c *Reader) Remaining() int {
	return len(c.Data) - c.Pos
}

// Begin marks the start of a structure. Alignment inside the structure is
// measured from this point until the matching End.
func (c *Reader) Begin() int {
	c.bases = append(c.bases, c.Pos)
	return len(c.bases) - 1
}

func (c *Reader) End(mark int) {
	if mark >= 0 && mark <= len(c.bases) {
		c.bases = c.bases[:mark]
	}
}

func (c *Reader) base() int {
	if len(c.bases) == 0 {
		return 0
	}
	return c.bases[len(c.bases)-1]
}

// Align skips padding up to the next n-byte boundary of the current structure.
func (c *Reader) Align(n int) error {
	if n <= 1 {
		return nil
	}
	pad := (n - (c.Pos-c.base())%n) % n
	_, err := c.next(pad)
	return err
}

func (c *Reader) next(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Errorf("wire: negative length %d", n)
	}
	if c.Pos+n > len(c.Data) {
		return nil, errors.Wrapf(ErrShortBuffer, "need %d bytes at offset %d, have %d", n, c.Pos, len(c.Data)-c.Pos)
	}
	ret := c.Data[c.Pos : c.Pos+n]
	c.Pos += n
	return ret, nil
}

// ReadBytes returns a copy of the next n bytes.
func (c *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := c.next(n)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

// ReadRest consumes everything left in the buffer.
func (c *Reader) ReadRest() ([]byte, error) {
	return c.ReadBytes(c.Remaining())
}

func (c *Reader) ReadU8() (uint8, error) {
	b, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Reader) ReadU16() (uint16, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Reader) ReadU32() (uint32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Reader) ReadU64() (uint64, error) {
	b, err := c.next(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *Reader) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

func (c *Reader) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

func (c *Reader) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

func (c *Reader) ReadI64() (int64, error) {
	v, err := c.ReadU64()
	return int64(v), err
}

func (c *Reader) ReadF32() (float32, error) {
	v, err := c.ReadU32()
	return math.Float32frombits(v), err
}

func (c *Reader) ReadF64() (float64, error) {
	v, err := c.ReadU64()
	return math.Float64frombits(v), err
}

// ReadBool reads a 32-bit flag.
func (c *Reader) ReadBool() (bool, error) {
	v, err := c.ReadU32()
	return v != 0, err
}

// ReadString reads an i16 length (-1 escapes to an i32 length), the
// Windows-1252 bytes, and padding that brings the whole value to a multiple
// of four.
func (c *Reader) ReadString() (string, error) {
	short, err := c.ReadI16()
	if err != nil {
		return "", err
	}
	consumed := 2
	n := int(short)
	if short == -1 {
		long, err := c.ReadI32()
		if err != nil {
			return "", err
		}
		consumed += 4
		n = int(long)
	}
	if n < 0 {
		return "", errors.Errorf("wire: invalid string length %d", n)
	}
	b, err := c.next(n)
	if err != nil {
		return "", err
	}
	consumed += n
	if _, err = c.next((4 - consumed%4) % 4); err != nil {
		return "", err
	}
	text, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(text), nil
}

// ReadWString reads a UTF-16 string whose character count uses one byte, or two
// when the high bit of the first byte is set.
func (c *Reader) ReadWString() (string, error) {
	first, err := c.ReadU8()
	if err != nil {
		return "", err
	}
	n := int(first)
	if first&0x80 != 0 {
		second, err := c.ReadU8()
		if err != nil {
			return "", err
		}
		n = int(first&0x7f)<<8 | int(second)
	}
	b, err := c.next(n * 2)
	if err != nil {
		return "", err
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(units)), nil
}
