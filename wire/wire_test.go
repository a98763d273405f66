package wire

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStringPadding(t *testing.T) {
	for _, s := range []string{"", "a", "ab", "abc", "abcdef"} {
		w := NewWriter()
		require.NoError(t, w.WriteString(s))
		require.Zero(t, w.Len()%4, "string %q", s)

		r := NewReader(w.Bytes())
		got, err := r.ReadString()
		require.NoError(t, err)
		require.Equal(t, s, got)
		require.Zero(t, r.Remaining())
	}
}

func TestStringLongLength(t *testing.T) {
	data := []byte{0xff, 0xff, 0x02, 0x00, 0x00, 0x00, 'h', 'i'}
	r := NewReader(data)
	got, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hi", got)
}

func TestStringCodePage(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteString("é"))
	require.Equal(t, []byte{1, 0, 0xE9, 0}, w.Bytes())

	got, err := NewReader(w.Bytes()).ReadString()
	require.NoError(t, err)
	require.Equal(t, "é", got)

	got, err = NewReader([]byte{2, 0, 0x80, 0x93}).ReadString()
	require.NoError(t, err)
	require.Equal(t, "€“", got)

	require.Error(t, NewWriter().WriteString("日本"))
}

func TestWString(t *testing.T) {
	long := make([]rune, 200)
	for i := range long {
		long[i] = 'x'
	}
	for _, s := range []string{"", "héllo", string(long)} {
		w := NewWriter()
		require.NoError(t, w.WriteWString(s))
		got, err := NewReader(w.Bytes()).ReadWString()
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestAlignIsRelativeToStructure(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteU8(0xaa))
	mark := w.Begin()
	require.NoError(t, w.WriteU8(1))
	require.NoError(t, w.Align(4))
	require.NoError(t, w.WriteU32(7))
	w.End(mark)
	require.Equal(t, 1+4+4, w.Len())

	r := NewReader(w.Bytes())
	_, err := r.ReadU8()
	require.NoError(t, err)
	mark = r.Begin()
	_, err = r.ReadU8()
	require.NoError(t, err)
	require.NoError(t, r.Align(4))
	require.Equal(t, 5, r.Pos)
	v, err := r.ReadU32()
	require.NoError(t, err)
	require.EqualValues(t, 7, v)
	r.End(mark)
}

func TestShortBuffer(t *testing.T) {
	_, err := NewReader([]byte{1, 2}).ReadU32()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrShortBuffer))
}

func TestReadBytesCopies(t *testing.T) {
	data := []byte{1, 2, 3}
	got, err := NewReader(data).ReadRest()
	require.NoError(t, err)
	data[0] = 9
	require.Equal(t, []byte{1, 2, 3}, got)
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[int32]string{3: "c", -1: "a", 2: "b"})
	if diff := cmp.Diff([]int32{-1, 2, 3}, got); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDeref(t *testing.T) {
	var p *uint16
	require.EqualValues(t, 0, Deref(p))
	v := uint16(5)
	require.EqualValues(t, 5, Deref(&v))
}

func TestCounts(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteListCount(2))
	require.NoError(t, w.WriteHashTableCount(1))
	require.NoError(t, w.WritePackedCount(3))
	require.Error(t, w.WritePackedCount(MaxPackedCount+1))
	require.Equal(t, []byte{2, 0, 0, 0, 1, 0, 1, 0, 3, 0, 0, 0}, w.Bytes())

	// the header claims more entries than bytes left
	r := NewReader([]byte{9, 0, 0, 0, 1})
	_, err := r.ReadListCount(1)
	require.ErrorIs(t, err, ErrShortBuffer)

	r = NewReader([]byte{1, 0, 8, 0, 0xAA})
	n, err := r.ReadHashTableCount(1)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	r = NewReader([]byte{2, 0, 0, 0x40, 0xAA, 0xBB})
	n, err = r.ReadPackedCount(1)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.Error(t, NewReader(nil).Count(-1, 0))
}

func TestCountElementSize(t *testing.T) {
	r := NewReader(make([]byte, 8))
	require.NoError(t, r.Count(2, 4))
	require.ErrorIs(t, r.Count(3, 4), ErrShortBuffer)

	// elements that may be empty are never rejected for the buffer size
	require.NoError(t, NewReader(nil).Count(1000, 0))
	n, err := NewReader([]byte{0xE8, 0x03, 0, 0}).ReadListCount(0)
	require.NoError(t, err)
	require.Equal(t, 1000, n)
}
