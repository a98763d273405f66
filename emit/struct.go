package emit

import (
	"fmt"
	"strings"

	"github.com/vuuvv/wiregen/resolve"
)

// structGen emits one declared type with its variant cases.
type structGen struct {
	codec
	s *resolve.Struct
	f *file
}

func (this *structGen) emit() {
	if text := strings.Join(strings.Fields(this.s.Schema.Text), " "); text != "" {
		this.f.line("// %s %s", this.s.Ident, text)
	}
	this.decl(this.s.Body)
	this.f.blank()
	this.readMethod(this.s.Body, nil)
	this.f.blank()
	this.writeMethod(this.s.Body, nil)
	this.cases(this.s.Body, nil)
}

// cases emits the interface and case structures of a variant body and of
// every nested variant. parents are the structures enclosing b.
func (this *structGen) cases(b *resolve.Body, parents []string) {
	if b.Variant == nil {
		return
	}
	v := b.Variant
	this.f.blank()
	this.f.line("// %s is one of the %s cases selected by %s.", v.Iface, b.Ident, v.Field)
	this.f.line("type %s interface {", v.Iface)
	this.f.line("is%s()", v.Iface)
	this.f.line("}")

	inner := append(append([]string(nil), parents...), b.Ident)
	for _, c := range v.Cases {
		this.f.blank()
		this.f.line("// %s handles %s %s.", c.Body.Ident, v.Field, formatValues(c.Values, ", "))
		this.decl(c.Body)
		this.f.blank()
		this.f.line("func (*%s) is%s() {}", c.Body.Ident, v.Iface)
		this.f.blank()
		this.readMethod(c.Body, inner)
		this.f.blank()
		this.writeMethod(c.Body, inner)
		this.cases(c.Body, inner)
	}
}

func (this *structGen) decl(b *resolve.Body) {
	this.f.line("type %s struct {", b.Ident)
	this.members(b.Groups)
	if b.Variant != nil {
		this.f.line("%s %s", b.Variant.Member, b.Variant.Iface)
	}
	this.members(b.Trailing)
	this.f.line("}")
}

func (this *structGen) members(groups []*resolve.Group) {
	for _, g := range groups {
		for _, m := range g.Members {
			if m.IsAlign() || !m.Declare {
				continue
			}
			typ := m.Type.Expr(this.cat)
			if m.Optional {
				typ = "*" + typ
			}
			this.f.line("%s %s", m.Ident, typ)
			for _, sub := range m.Subfields {
				this.f.line("%s %s", sub.Ident, sub.Type.Expr(this.cat))
			}
		}
	}
}

// params renders the enclosing structures a case method receives.
func params(parents []string) string {
	var sb strings.Builder
	for i, p := range parents {
		fmt.Fprintf(&sb, ", s%d *%s", i, p)
	}
	return sb.String()
}

// args passes the enclosing structures plus the receiver on to a case.
func args(parents []string) string {
	var sb strings.Builder
	for i := range parents {
		fmt.Fprintf(&sb, ", s%d", i)
	}
	sb.WriteString(", p")
	return sb.String()
}

func (this *structGen) readMethod(b *resolve.Body, parents []string) {
	if parents == nil {
		this.f.line("func (p *%s) Read(r *wire.Reader) (err error) {", b.Ident)
		this.f.line("defer r.End(r.Begin())")
	} else {
		this.f.line("func (p *%s) read(r *wire.Reader%s) (err error) {", b.Ident, params(parents))
	}
	this.readGroups(b.Groups)
	if v := b.Variant; v != nil {
		this.f.line("switch %s {", v.Disc)
		for _, c := range v.Cases {
			this.f.line("case %s:", formatValues(c.Values, ", "))
			this.f.line("v := &%s{}", c.Body.Ident)
			this.f.check("err = v.read(r%s)", args(parents))
			this.f.line("p.%s = v", v.Member)
		}
		this.f.line("default:")
		this.f.line("return &wire.UnhandledVariantError{Type: %q, Field: %q, Value: %s}", this.s.Schema.Name, v.Field, v.Disc)
		this.f.line("}")
	}
	this.readGroups(b.Trailing)
	this.f.line("return nil")
	this.f.line("}")
}

func (this *structGen) readGroups(groups []*resolve.Group) {
	for _, g := range groups {
		if g.Cond != "" {
			this.f.line("if %s {", g.Cond)
		}
		for _, m := range g.Members {
			this.readMember(m)
		}
		if g.Cond != "" {
			this.f.line("}")
		}
	}
}

func (this *structGen) readMember(m *resolve.Member) {
	if m.IsAlign() {
		this.f.check("err = r.Align(%d)", m.Align)
		return
	}
	target := "p." + m.Ident
	if m.Optional {
		this.f.line("%s = new(%s)", target, m.Type.Expr(this.cat))
		target = "*" + target
	}
	if m.Wire != nil {
		this.f.line("{")
		this.f.line("var v %s", m.Wire.Expr(this.cat))
		this.read(&this.f.code, "v", m.Wire, m.Length, 0)
		this.f.line("%s = %s(v)", target, m.Type.Expr(this.cat))
		this.f.line("}")
	} else {
		this.read(&this.f.code, target, m.Type, m.Length, 0)
	}
	for _, sub := range m.Subfields {
		this.f.line("p.%s = %s", sub.Ident, sub.Value)
	}
}

func (this *structGen) writeMethod(b *resolve.Body, parents []string) {
	if parents == nil {
		this.f.line("func (p *%s) Write(w *wire.Writer) (err error) {", b.Ident)
		this.f.line("defer w.End(w.Begin())")
	} else {
		this.f.line("func (p *%s) write(w *wire.Writer%s) (err error) {", b.Ident, params(parents))
	}
	this.writeGroups(b, b.Groups)
	if v := b.Variant; v != nil {
		this.f.line("switch %s {", v.Disc)
		for _, c := range v.Cases {
			this.f.line("case %s:", formatValues(c.Values, ", "))
			this.f.line("v, ok := p.%s.(*%s)", v.Member, c.Body.Ident)
			this.f.line("if !ok {")
			this.f.line("return &wire.VariantMismatchError{Type: %q, Field: %q, Value: %s, Got: p.%s}",
				this.s.Schema.Name, v.Field, v.Disc, v.Member)
			this.f.line("}")
			this.f.check("err = v.write(w%s)", args(parents))
		}
		this.f.line("default:")
		this.f.line("return &wire.UnhandledVariantError{Type: %q, Field: %q, Value: %s}", this.s.Schema.Name, v.Field, v.Disc)
		this.f.line("}")
	}
	this.writeGroups(b, b.Trailing)
	this.f.line("return nil")
	this.f.line("}")
}

func (this *structGen) writeGroups(b *resolve.Body, groups []*resolve.Group) {
	for _, g := range groups {
		if g.Cond != "" {
			this.f.line("if %s {", g.Cond)
		}
		for _, m := range g.Members {
			this.writeMember(b, m)
		}
		if g.Cond != "" {
			this.f.line("}")
		}
	}
}

func (this *structGen) writeMember(b *resolve.Body, m *resolve.Member) {
	if m.IsAlign() {
		this.f.check("err = w.Align(%d)", m.Align)
		return
	}
	source := "p." + m.Ident
	if m.Optional {
		this.f.line("if %s == nil {", source)
		this.f.line("return &wire.MissingFieldError{Type: %q, Field: %q}", b.Ident, m.Ident)
		this.f.line("}")
		source = "*" + source
	}
	typ := m.Type
	if m.Wire != nil {
		typ = m.Wire
		source = fmt.Sprintf("%s(%s)", typ.Expr(this.cat), source)
	}
	this.write(&this.f.code, source, typ, m.Length, 0, site{typ: b.Ident, field: m.Ident})
	for _, sub := range m.Subfields {
		this.f.line("p.%s = %s", sub.Ident, sub.Value)
	}
}

func formatValue(v int64) string {
	if v < 0 {
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%#x", v)
}

func formatValues(values []int64, sep string) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = formatValue(v)
	}
	return strings.Join(out, sep)
}
