package expr

import (
	"unicode"

	"github.com/vuuvv/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var twoCharOps = []string{"&&", "||", "==", "!=", "<=", ">=", "<<", ">>"}

const oneCharOps = "<>+-*/%&|^!~"

func lex(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case unicode.IsDigit(r):
			start := i
			for i < len(rs) && (unicode.IsDigit(rs[i]) || unicode.IsLetter(rs[i])) {
				i++
			}
			toks = append(toks, token{tokNumber, string(rs[start:i]), start})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(rs) && (unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i]) || rs[i] == '_' || rs[i] == '.') {
				i++
			}
			toks = append(toks, token{tokIdent, string(rs[start:i]), start})
		default:
			matched := false
			if i+1 < len(rs) {
				pair := string(rs[i : i+2])
				for _, op := range twoCharOps {
					if pair == op {
						toks = append(toks, token{tokOp, op, i})
						i += 2
						matched = true
						break
					}
				}
			}
			if matched {
				continue
			}
			if containsRune(oneCharOps, r) {
				toks = append(toks, token{tokOp, string(r), i})
				i++
				continue
			}
			return nil, errors.Errorf("unexpected character %q at %d in %q", r, i, src)
		}
	}
	toks = append(toks, token{tokEOF, "", len(rs)})
	return toks, nil
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
