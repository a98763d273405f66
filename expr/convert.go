package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vuuvv/errors"
)

type Kind int

const (
	KindOther Kind = iota
	KindInt
	KindBool
)

// Ref is a field visible to an expression.
type Ref struct {
	Expr     string // Go operand, e.g. p.Flags or s0.Count
	Kind     Kind
	Optional bool
}

// Scope resolves identifiers against fields already decoded.
type Scope interface {
	Lookup(name string) (Ref, bool)
	// Constant resolves Enum.Value to a Go constant.
	Constant(enum, value string) (string, bool)
}

// Length is a converted count expression.
type Length struct {
	Rest bool   // "*": consume everything left
	Code string // int expression
}

type value struct {
	code string
	kind Kind
}

type converter struct {
	src   string
	scope Scope
	deref string
}

// Condition converts src to a Go boolean expression. Integers are true when
// non-zero.
func Condition(src string, scope Scope, runtime string) (string, error) {
	v, err := convert(src, scope, runtime)
	if err != nil {
		return "", err
	}
	code, err := toBool(v)
	if err != nil {
		return "", errors.Wrapf(err, "condition %q", src)
	}
	return unwrap(code), nil
}

// Value converts src to an int64 Go expression.
func Value(src string, scope Scope, runtime string) (string, error) {
	v, err := convert(src, scope, runtime)
	if err != nil {
		return "", err
	}
	if v.kind != KindInt {
		return "", errors.Errorf("expression %q is not numeric", src)
	}
	return unwrap(v.code), nil
}

// LengthOf converts a vector or table length to an int Go expression.
func LengthOf(src string, scope Scope, runtime string) (Length, error) {
	if strings.TrimSpace(src) == "*" {
		return Length{Rest: true}, nil
	}
	code, err := Value(src, scope, runtime)
	if err != nil {
		return Length{}, err
	}
	return Length{Code: fmt.Sprintf("int(%s)", code)}, nil
}

func convert(src string, scope Scope, runtime string) (value, error) {
	n, err := Parse(src)
	if err != nil {
		return value{}, err
	}
	c := &converter{src: src, scope: scope, deref: runtime + ".Deref"}
	return c.conv(n)
}

func (this *converter) conv(n Node) (value, error) {
	switch n := n.(type) {
	case *Number:
		return value{code: literal(n), kind: KindInt}, nil
	case *Bool:
		return value{code: fmt.Sprint(n.Value), kind: KindBool}, nil
	case *Ident:
		return this.ident(n.Name)
	case *Unary:
		x, err := this.conv(n.X)
		if err != nil {
			return value{}, err
		}
		return this.unary(n.Op, x)
	case *Binary:
		l, err := this.conv(n.L)
		if err != nil {
			return value{}, err
		}
		r, err := this.conv(n.R)
		if err != nil {
			return value{}, err
		}
		return this.binary(n.Op, l, r)
	}
	return value{}, errors.Errorf("unsupported expression node %T", n)
}

func (this *converter) ident(name string) (value, error) {
	if enum, member, ok := strings.Cut(name, "."); ok {
		c, found := this.scope.Constant(enum, member)
		if !found {
			return value{}, errors.Errorf("unknown enum constant %s in %q", name, this.src)
		}
		return value{code: fmt.Sprintf("int64(%s)", c), kind: KindInt}, nil
	}
	ref, ok := this.scope.Lookup(name)
	if !ok {
		return value{}, errors.Errorf("unknown field %s in %q: fields must be decoded before use", name, this.src)
	}
	operand := ref.Expr
	if ref.Optional {
		operand = fmt.Sprintf("%s(%s)", this.deref, ref.Expr)
	}
	switch ref.Kind {
	case KindInt:
		return value{code: fmt.Sprintf("int64(%s)", operand), kind: KindInt}, nil
	case KindBool:
		return value{code: operand, kind: KindBool}, nil
	}
	return value{}, errors.Errorf("field %s in %q is not a number or bool", name, this.src)
}

func (this *converter) unary(op string, x value) (value, error) {
	switch op {
	case "!":
		if x.kind == KindInt {
			return value{code: fmt.Sprintf("(%s == 0)", x.code), kind: KindBool}, nil
		}
		return value{code: fmt.Sprintf("!%s", x.code), kind: KindBool}, nil
	case "-":
		if x.kind != KindInt {
			return value{}, errors.Errorf("operand of - is not numeric in %q", this.src)
		}
		return value{code: fmt.Sprintf("(-%s)", x.code), kind: KindInt}, nil
	case "~":
		if x.kind != KindInt {
			return value{}, errors.Errorf("operand of ~ is not numeric in %q", this.src)
		}
		return value{code: fmt.Sprintf("(^%s)", x.code), kind: KindInt}, nil
	}
	return value{}, errors.Errorf("unknown operator %s in %q", op, this.src)
}

func (this *converter) binary(op string, l, r value) (value, error) {
	switch op {
	case "&&", "||":
		lc, err := toBool(l)
		if err != nil {
			return value{}, err
		}
		rc, err := toBool(r)
		if err != nil {
			return value{}, err
		}
		return value{code: fmt.Sprintf("(%s %s %s)", lc, op, rc), kind: KindBool}, nil
	case "==", "!=":
		if l.kind == KindBool && r.kind == KindBool {
			return value{code: fmt.Sprintf("(%s %s %s)", l.code, op, r.code), kind: KindBool}, nil
		}
		fallthrough
	case "<", "<=", ">", ">=":
		if l.kind != KindInt || r.kind != KindInt {
			return value{}, errors.Errorf("operands of %s are not comparable in %q", op, this.src)
		}
		return value{code: fmt.Sprintf("(%s %s %s)", l.code, op, r.code), kind: KindBool}, nil
	}
	if _, ok := bindingPower[op]; !ok {
		return value{}, errors.Errorf("unknown operator %s in %q", op, this.src)
	}
	if l.kind != KindInt || r.kind != KindInt {
		return value{}, errors.Errorf("operands of %s are not numeric in %q", op, this.src)
	}
	return value{code: fmt.Sprintf("(%s %s %s)", l.code, op, r.code), kind: KindInt}, nil
}

func toBool(v value) (string, error) {
	switch v.kind {
	case KindBool:
		return v.code, nil
	case KindInt:
		return fmt.Sprintf("(%s != 0)", v.code), nil
	}
	return "", errors.New("expression is not a condition")
}

// unwrap drops one pair of parentheses enclosing the whole expression.
func unwrap(code string) string {
	if len(code) < 2 || code[0] != '(' || code[len(code)-1] != ')' {
		return code
	}
	depth := 0
	for i, c := range code {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(code)-1 {
				return code
			}
		}
	}
	return code[1 : len(code)-1]
}

// literal renders n as an int64 constant. Decimal text is printed again so a
// leading zero is not read as octal. Hex past MaxInt64 keeps its bit pattern.
func literal(n *Number) string {
	switch {
	case n.Value < 0:
		return "(" + strconv.FormatInt(n.Value, 10) + ")"
	case strings.HasPrefix(n.Text, "0x") || strings.HasPrefix(n.Text, "0X"):
		return n.Text
	}
	return strconv.FormatInt(n.Value, 10)
}
