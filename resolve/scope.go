package resolve

import (
	"fmt"
	"strings"

	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/expr"
)

type binding struct {
	ident string
	ref   expr.Ref
}

type frameScope struct {
	depth int
	names map[string]binding
	order []string
}

// scope is the set of fields an expression may reference: the fields of the
// structure being read that precede the expression, then the fields each
// enclosing structure read before its dispatch.
type scope struct {
	model  *modelBuilder
	from   core.Category
	frames []*frameScope
	uses   map[core.Category]bool
}

func (s *scope) push(depth int) {
	s.frames = append(s.frames, &frameScope{depth: depth, names: map[string]binding{}})
}

func (s *scope) current() *frameScope {
	return s.frames[len(s.frames)-1]
}

func (s *scope) bind(name string, ident string, kind expr.Kind, optional bool) {
	f := s.current()
	if _, ok := f.names[name]; !ok {
		f.order = append(f.order, name)
	}
	f.names[name] = binding{ident: ident, ref: expr.Ref{Kind: kind, Optional: optional}}
}

// child freezes what is visible now for a nested case body.
func (s *scope) child() *scope {
	c := &scope{model: s.model, from: s.from, uses: s.uses}
	for _, f := range s.frames {
		cp := &frameScope{depth: f.depth, names: make(map[string]binding, len(f.names)), order: append([]string(nil), f.order...)}
		for k, v := range f.names {
			cp.names[k] = v
		}
		c.frames = append(c.frames, cp)
	}
	return c
}

func (s *scope) prefix(f *frameScope) string {
	if f == s.current() {
		return "p"
	}
	return fmt.Sprintf("s%d", f.depth)
}

func (s *scope) Lookup(name string) (expr.Ref, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		b, ok := f.names[name]
		if !ok {
			for _, n := range f.order {
				if strings.EqualFold(n, name) {
					b, ok = f.names[n], true
					break
				}
			}
		}
		if ok {
			ref := b.ref
			ref.Expr = s.prefix(f) + "." + b.ident
			return ref, true
		}
	}
	return expr.Ref{}, false
}

func (s *scope) Constant(enum string, value string) (string, bool) {
	ident, ok := s.model.constants[enum][value]
	if !ok {
		return "", false
	}
	if s.from == core.CategoryEnums {
		return ident, true
	}
	s.use(core.CategoryEnums)
	return core.CategoryEnums.Dir() + "." + ident, true
}

// use records a generated package the structure refers to.
func (s *scope) use(cats ...core.Category) {
	for _, c := range cats {
		if c != s.from {
			s.uses[c] = true
		}
	}
}
