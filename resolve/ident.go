package resolve

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/stoewer/go-strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// words splits name at every rune that cannot appear in a Go identifier.
func words(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Exported turns a schema name into an exported Go identifier. Separators
// start a new word, "_flags" becomes Flags and "object_id" becomes ObjectId.
// The rest of a word keeps its case, so DWORD stays DWORD.
func Exported(name string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var sb strings.Builder
	for _, w := range words(name) {
		if unicode.IsDigit([]rune(w)[0]) {
			sb.WriteString(w)
			continue
		}
		sb.WriteString(title.String(w))
	}
	out := sb.String()
	if out == "" {
		return "X"
	}
	if unicode.IsDigit([]rune(out)[0]) {
		return "X" + out
	}
	return out
}

// Snake turns a schema name into lower snake case: YGrid is y_grid,
// HTTPServer is http_server.
func Snake(name string) string {
	out := strcase.SnakeCase(strings.Join(words(name), "_"))
	if out == "" {
		return "x"
	}
	return out
}

// reserved names collide with files or methods the generator writes itself.
var reservedFiles = map[string]bool{"registry": true, "doc": true}

// FileName is the generated file name of a schema type.
func FileName(name string) string {
	base := Snake(name)
	if reservedFiles[base] || strings.HasSuffix(base, "_test") {
		base += "_msg"
	}
	return base + ".go"
}

// Namer hands out unique identifiers in the order they are requested.
type Namer struct {
	used     map[string]bool
	reserved map[string]bool
}

func NewNamer(reserved ...string) *Namer {
	n := &Namer{used: map[string]bool{}, reserved: map[string]bool{}}
	for _, r := range reserved {
		n.reserved[r] = true
	}
	return n
}

// Name returns ident, or ident with a numeric suffix when it is already
// taken. Reserved identifiers get a "_" suffix first.
func (n *Namer) Name(ident string) string {
	if n.reserved[ident] {
		ident += "_"
	}
	name := ident
	for i := 2; n.used[name]; i++ {
		name = fmt.Sprintf("%s%d", ident, i)
	}
	n.used[name] = true
	return name
}

func (n *Namer) Used(ident string) bool {
	return n.used[ident]
}
