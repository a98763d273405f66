package expr

import (
	"strings"

	"github.com/vuuvv/errors"
	"github.com/vuuvv/wiregen/core"
)

type Node interface {
	node()
}

type Ident struct {
	Name string
}

type Number struct {
	Text  string
	Value int64
}

type Bool struct {
	Value bool
}

type Unary struct {
	Op string
	X  Node
}

type Binary struct {
	Op   string
	L, R Node
}

func (*Ident) node()  {}
func (*Number) node() {}
func (*Bool) node()   {}
func (*Unary) node()  {}
func (*Binary) node() {}

// Bitwise operators bind tighter than comparisons, so "Flags & 0x8 == 0x8"
// tests the masked bits.
var bindingPower = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, "<=": 4, ">": 4, ">=": 4,
	"|":  5,
	"^":  6,
	"&":  7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

const unaryPower = 11

type parser struct {
	src  string
	toks []token
	pos  int
}

// Parse parses a schema expression.
func Parse(src string) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	n, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, errors.Errorf("unexpected %q at %d in %q", t.text, t.pos, src)
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expr(minPower int) (Node, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp {
			return left, nil
		}
		power, ok := bindingPower[t.text]
		if !ok || power <= minPower {
			return left, nil
		}
		p.next()
		right, err := p.expr(power)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.text, L: left, R: right}
	}
}

func (p *parser) prefix() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := core.ParseIntLiteral(t.text)
		if err != nil {
			return nil, errors.Errorf("invalid number %q in %q", t.text, p.src)
		}
		return &Number{Text: t.text, Value: v}, nil
	case tokIdent:
		switch strings.ToLower(t.text) {
		case "true":
			return &Bool{Value: true}, nil
		case "false":
			return &Bool{Value: false}, nil
		}
		return &Ident{Name: t.text}, nil
	case tokLParen:
		n, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, errors.Errorf("missing ')' at %d in %q", c.pos, p.src)
		}
		return n, nil
	case tokOp:
		switch t.text {
		case "!", "-", "~":
			x, err := p.expr(unaryPower)
			if err != nil {
				return nil, err
			}
			return &Unary{Op: t.text, X: x}, nil
		}
	}
	if t.kind == tokEOF {
		return nil, errors.Errorf("unexpected end of %q", p.src)
	}
	return nil, errors.Errorf("unexpected %q at %d in %q", t.text, t.pos, p.src)
}
