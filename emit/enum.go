package emit

import (
	"strings"

	"github.com/vuuvv/wiregen/resolve"
)

func (this *generator) enum(f *file, e *resolve.Enum) {
	if text := strings.Join(strings.Fields(e.Schema.Text), " "); text != "" {
		f.line("// %s %s", e.Ident, text)
	}
	if e.Schema.Mask {
		f.line("// %s is a set of bit flags.", e.Ident)
	}
	f.line("type %s %s", e.Ident, e.Prim.Go)
	f.blank()

	if len(e.Consts) > 0 {
		f.line("const (")
		for _, c := range e.Consts {
			f.line("%s %s = %s", c.Ident, e.Ident, formatValue(c.Value))
		}
		f.line(")")
		f.blank()
	}

	if e.Schema.Mask {
		this.flagString(f, e)
	} else {
		this.enumString(f, e)
	}
	f.blank()
	scalarMethods(f, e.Ident, e.Prim)
}

// enumString names a single value. The first name of a value wins, a switch
// may not repeat a case.
func (this *generator) enumString(f *file, e *resolve.Enum) {
	seen := map[int64]bool{}
	f.line("func (e %s) String() string {", e.Ident)
	f.line("switch e {")
	for _, c := range e.Consts {
		if seen[c.Value] {
			continue
		}
		seen[c.Value] = true
		f.line("case %s:", c.Ident)
		f.line("return %q", c.Name)
	}
	f.line("}")
	f.line(`return "%s(" + strconv.FormatInt(int64(e), 10) + ")"`, e.Ident)
	f.line("}")
}

// flagString joins the names of the set flags with "|". Bits no flag names
// are appended in hex.
func (this *generator) flagString(f *file, e *resolve.Enum) {
	f.use("strings", "strings")
	seen := map[int64]bool{}
	zero := ""
	f.line("func (e %s) String() string {", e.Ident)
	for _, c := range e.Consts {
		if c.Value == 0 && zero == "" {
			zero = c.Name
		}
	}
	if zero == "" {
		zero = "0"
	}
	f.line("if e == 0 {")
	f.line("return %q", zero)
	f.line("}")
	f.line("var parts []string")
	for _, c := range e.Consts {
		if c.Value == 0 || seen[c.Value] {
			continue
		}
		seen[c.Value] = true
		f.line("if e&%s == %s {", c.Ident, c.Ident)
		f.line("parts = append(parts, %q)", c.Name)
		f.line("e &^= %s", c.Ident)
		f.line("}")
	}
	f.line("if e != 0 {")
	f.line(`parts = append(parts, "0x"+strconv.FormatUint(uint64(e), 16))`)
	f.line("}")
	f.line(`return strings.Join(parts, "|")`)
	f.line("}")
	f.blank()
	f.line("// Has reports whether every bit of flag is set in e.")
	f.line("func (e %s) Has(flag %s) bool {", e.Ident, e.Ident)
	f.line("return e&flag == flag")
	f.line("}")
}

// scalarMethods reads and writes a named scalar through its primitive.
func scalarMethods(f *file, ident string, prim *resolve.Primitive) {
	f.line("func (e *%s) Read(r *wire.Reader) error {", ident)
	f.line("v, err := r.Read%s()", prim.Method)
	f.line("if err != nil {")
	f.line("return err")
	f.line("}")
	f.line("*e = %s(v)", ident)
	f.line("return nil")
	f.line("}")
	f.blank()

	f.line("func (e %s) Write(w *wire.Writer) error {", ident)
	f.line("return w.Write%s(%s(e))", prim.Method, prim.Go)
	f.line("}")
}

func (this *generator) alias(f *file, a *resolve.Alias) {
	f.line("// %s is %s on the wire.", a.Ident, a.Schema.Parent)
	if !a.Newtype {
		f.line("type %s = %s", a.Ident, a.Target.Expr(a.Category))
		return
	}
	f.use(this.opts.Runtime, resolve.RuntimeName)
	f.line("type %s %s", a.Ident, a.Target.Prim.Go)
	f.blank()
	scalarMethods(f, a.Ident, a.Target.Prim)
}
