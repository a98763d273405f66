package wire

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf16"

	"github.com/vuuvv/errors"
	"golang.org/x/text/encoding/charmap"
)

// Writer encodes little-endian values into a growing buffer.
type Writer struct {
	Buffer bytes.Buffer
	bases  []int
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Bytes() []byte {
	return w.Buffer.Bytes()
}

func (w *Writer) Len() int {
	return w.Buffer.Len()
}

func (w *Writer) Begin() int {
	w.bases = append(w.bases, w.Buffer.Len())
	return len(w.bases) - 1
}

func (w *Writer) End(mark int) {
	if mark >= 0 && mark <= len(w.bases) {
		w.bases = w.bases[:mark]
	}
}

// Align writes zero padding up to the next n-byte boundary of the current structure.
func (w *Writer) Align(n int) error {
	if n <= 1 {
		return nil
	}
	base := 0
	if len(w.bases) > 0 {
		base = w.bases[len(w.bases)-1]
	}
	pad := (n - (w.Buffer.Len()-base)%n) % n
	return w.pad(pad)
}

func (w *Writer) pad(n int) error {
	for i := 0; i < n; i++ {
		w.Buffer.WriteByte(0)
	}
	return nil
}

func (w *Writer) WriteBytes(data []byte) error {
	_, err := w.Buffer.Write(data)
	return err
}

func (w *Writer) WriteU8(v uint8) error {
	return w.Buffer.WriteByte(v)
}

func (w *Writer) WriteU16(v uint16) error {
	w.Buffer.Write(binary.LittleEndian.AppendUint16(nil, v))
	return nil
}

func (w *Writer) WriteU32(v uint32) error {
	w.Buffer.Write(binary.LittleEndian.AppendUint32(nil, v))
	return nil
}

func (w *Writer) WriteU64(v uint64) error {
	w.Buffer.Write(binary.LittleEndian.AppendUint64(nil, v))
	return nil
}

func (w *Writer) WriteI8(v int8) error {
	return w.WriteU8(uint8(v))
}

func (w *Writer) WriteI16(v int16) error {
	return w.WriteU16(uint16(v))
}

func (w *Writer) WriteI32(v int32) error {
	return w.WriteU32(uint32(v))
}

func (w *Writer) WriteI64(v int64) error {
	return w.WriteU64(uint64(v))
}

func (w *Writer) WriteF32(v float32) error {
	return w.WriteU32(math.Float32bits(v))
}

func (w *Writer) WriteF64(v float64) error {
	return w.WriteU64(math.Float64bits(v))
}

func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteU32(1)
	}
	return w.WriteU32(0)
}

func (w *Writer) WriteString(s string) error {
	b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return errors.Wrapf(err, "wire: string %q is not Windows-1252", s)
	}
	consumed := 2
	if len(b) >= math.MaxInt16 {
		if len(b) > math.MaxInt32 {
			return errors.Errorf("wire: string too long: %d bytes", len(b))
		}
		_ = w.WriteI16(-1)
		_ = w.WriteI32(int32(len(b)))
		consumed += 4
	} else {
		_ = w.WriteI16(int16(len(b)))
	}
	w.Buffer.Write(b)
	consumed += len(b)
	return w.pad((4 - consumed%4) % 4)
}

func (w *Writer) WriteWString(s string) error {
	units := utf16.Encode([]rune(s))
	n := len(units)
	switch {
	case n < 0x80:
		_ = w.WriteU8(uint8(n))
	case n <= 0x7fff:
		_ = w.WriteU8(uint8(n>>8) | 0x80)
		_ = w.WriteU8(uint8(n))
	default:
		return errors.Errorf("wire: wide string too long: %d units", n)
	}
	for _, u := range units {
		_ = w.WriteU16(u)
	}
	return nil
}
