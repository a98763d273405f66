package emit

import (
	"fmt"
	"strings"

	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/expr"
	"github.com/vuuvv/wiregen/resolve"
)

// codec writes the statements that move one value between the wire and a Go
// location.
type codec struct {
	cat core.Category
}

func local(name string, depth int) string {
	if depth == 0 {
		return name
	}
	return fmt.Sprintf("%s%d", name, depth)
}

// methodTarget strips a dereference, pointers carry the Read and Write methods too.
func methodTarget(target string) string {
	return strings.TrimPrefix(target, "*")
}

func (this *codec) read(c *code, target string, t *resolve.Type, length expr.Length, depth int) {
	switch {
	case t.Kind == resolve.KindPrimitive:
		c.check("%s, err = r.Read%s()", target, t.Prim.Method)
	case t.HasMethods():
		c.check("err = %s.Read(r)", methodTarget(target))
	case t.IsBytes():
		this.readBytes(c, target, t, length, depth)
	case t.IsSlice():
		this.readSlice(c, target, t, length, depth)
	default:
		this.readMap(c, target, t, length, depth)
	}
}

// readCount sets the count local n of a collection and validates it against
// the smallest size of one entry.
func (this *codec) readCount(c *code, n string, t *resolve.Type, length expr.Length) {
	header := map[resolve.Kind]string{
		resolve.KindPackableList:      "ReadListCount",
		resolve.KindPackableHashTable: "ReadHashTableCount",
		resolve.KindPHashTable:        "ReadPackedCount",
	}
	if method, ok := header[t.Kind]; ok {
		c.line("var %s int", n)
		c.check("%s, err = r.%s(%d)", n, method, t.ElemMin())
		return
	}
	c.line("%s := %s", n, length.Code)
	c.check("err = r.Count(%s, %d)", n, t.ElemMin())
}

func (this *codec) readBytes(c *code, target string, t *resolve.Type, length expr.Length, depth int) {
	switch {
	case length.Rest:
		c.check("%s, err = r.ReadRest()", target)
	case t.Kind == resolve.KindVec:
		c.check("%s, err = r.ReadBytes(%s)", target, length.Code)
	default:
		n := local("n", depth)
		c.line("{")
		this.readCount(c, n, t, length)
		c.check("%s, err = r.ReadBytes(%s)", target, n)
		c.line("}")
	}
}

func (this *codec) readSlice(c *code, target string, t *resolve.Type, length expr.Length, depth int) {
	if length.Rest {
		v := local("v", depth)
		c.line("%s = nil", target)
		c.line("for r.Remaining() > 0 {")
		c.line("var %s %s", v, t.Elem.Expr(this.cat))
		this.read(c, v, t.Elem, expr.Length{}, depth+1)
		c.line("%s = append(%s, %s)", target, target, v)
		c.line("}")
		return
	}
	n, i := local("n", depth), local("i", depth)
	c.line("{")
	this.readCount(c, n, t, length)
	c.line("%s = make(%s, %s)", target, t.Expr(this.cat), n)
	c.line("for %s := range %s {", i, target)
	this.read(c, fmt.Sprintf("%s[%s]", target, i), t.Elem, expr.Length{}, depth+1)
	c.line("}")
	c.line("}")
}

func (this *codec) readMap(c *code, target string, t *resolve.Type, length expr.Length, depth int) {
	k, v := local("k", depth), local("v", depth)
	entry := func() {
		c.line("var %s %s", k, t.Key.Expr(this.cat))
		c.line("var %s %s", v, t.Elem.Expr(this.cat))
		this.read(c, k, t.Key, expr.Length{}, depth+1)
		this.read(c, v, t.Elem, expr.Length{}, depth+1)
		c.line("%s[%s] = %s", target, k, v)
	}
	if length.Rest {
		c.line("%s = %s{}", target, t.Expr(this.cat))
		c.line("for r.Remaining() > 0 {")
		entry()
		c.line("}")
		return
	}
	n := local("n", depth)
	c.line("{")
	this.readCount(c, n, t, length)
	c.line("%s = make(%s, %s)", target, t.Expr(this.cat), n)
	c.line("for range %s {", n)
	entry()
	c.line("}")
	c.line("}")
}

// site names the structure and member for runtime errors.
type site struct {
	typ   string
	field string
}

func (this *codec) write(c *code, source string, t *resolve.Type, length expr.Length, depth int, at site) {
	switch {
	case t.Kind == resolve.KindPrimitive:
		c.check("err = w.Write%s(%s)", t.Prim.Method, source)
	case t.HasMethods():
		c.check("err = %s.Write(w)", methodTarget(source))
	default:
		this.writeCount(c, source, t, length, at)
		if t.IsBytes() {
			c.check("err = w.WriteBytes(%s)", source)
			return
		}
		if t.IsSlice() {
			i := local("i", depth)
			c.line("for %s := range %s {", i, source)
			this.write(c, fmt.Sprintf("%s[%s]", source, i), t.Elem, expr.Length{}, depth+1, at)
			c.line("}")
			return
		}
		k, v := local("k", depth), local("v", depth)
		c.line("for _, %s := range wire.SortedKeys(%s) {", k, source)
		c.line("%s := %s[%s]", v, source, k)
		this.write(c, k, t.Key, expr.Length{}, depth+1, at)
		this.write(c, v, t.Elem, expr.Length{}, depth+1, at)
		c.line("}")
	}
}

// writeCount writes a count header, or checks the collection against its
// length expression.
func (this *codec) writeCount(c *code, source string, t *resolve.Type, length expr.Length, at site) {
	switch t.Kind {
	case resolve.KindPackableList:
		c.check("err = w.WriteListCount(len(%s))", source)
	case resolve.KindPackableHashTable:
		c.check("err = w.WriteHashTableCount(len(%s))", source)
	case resolve.KindPHashTable:
		c.check("err = w.WritePackedCount(len(%s))", source)
	default:
		if length.Rest {
			return
		}
		c.line("if want := %s; len(%s) != want {", length.Code, source)
		c.line("return &wire.LengthMismatchError{Type: %q, Field: %q, Want: want, Got: len(%s)}", at.typ, at.field, source)
		c.line("}")
	}
}
