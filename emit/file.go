package emit

import (
	"bytes"
	"fmt"
	"path"
	"sort"

	"github.com/vuuvv/errors"
	"github.com/vuuvv/wiregen/core"
	"golang.org/x/tools/imports"
)

// Header starts every generated file.
const Header = "// Code generated by wiregen. DO NOT EDIT."

// code accumulates Go source. Indentation is left to the formatter.
type code struct {
	buf bytes.Buffer
}

func (c *code) line(format string, args ...any) {
	fmt.Fprintf(&c.buf, format, args...)
	c.buf.WriteByte('\n')
}

func (c *code) blank() {
	c.buf.WriteByte('\n')
}

// check emits the error check that follows every read and write.
func (c *code) check(stmt string, args ...any) {
	c.line("if "+stmt+"; err != nil {", args...)
	c.line("return err")
	c.line("}")
}

type file struct {
	code
	path    string
	pkg     string
	imports map[string]string
}

func newFile(dir string, name string) *file {
	return &file{path: path.Join(dir, name), pkg: path.Base(dir), imports: map[string]string{}}
}

// use imports importPath under name, the name is only spelled out when it
// differs from the last path element.
func (f *file) use(importPath string, name string) {
	if path.Base(importPath) == name {
		name = ""
	}
	f.imports[importPath] = name
}

func (f *file) render() (*core.GeneratedFile, error) {
	var src bytes.Buffer
	src.WriteString(Header)
	src.WriteString("\n\n")
	fmt.Fprintf(&src, "package %s\n\n", f.pkg)
	if len(f.imports) > 0 {
		paths := make([]string, 0, len(f.imports))
		for p := range f.imports {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		src.WriteString("import (\n")
		for _, p := range paths {
			if name := f.imports[p]; name != "" {
				fmt.Fprintf(&src, "%s %q\n", name, p)
			} else {
				fmt.Fprintf(&src, "%q\n", p)
			}
		}
		src.WriteString(")\n\n")
	}
	src.Write(f.buf.Bytes())

	out, err := imports.Process(f.path, src.Bytes(), &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "format %s:\n%s", f.path, src.String())
	}
	return &core.GeneratedFile{Path: f.path, Content: out}, nil
}
