package core

import (
	"strconv"
	"strings"

	"github.com/vuuvv/errors"
)

// ParseIntLiteral parses a signed decimal or 0x-prefixed hex literal.
func ParseIntLiteral(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := false
	body := s
	if strings.HasPrefix(body, "-") {
		neg = true
		body = body[1:]
	}
	var u uint64
	var err error
	if hex, ok := strings.CutPrefix(body, "0x"); ok {
		u, err = strconv.ParseUint(hex, 16, 64)
	} else if hex, ok = strings.CutPrefix(body, "0X"); ok {
		u, err = strconv.ParseUint(hex, 16, 64)
	} else {
		var v int64
		v, err = strconv.ParseInt(body, 10, 64)
		u = uint64(v)
		if err == nil && v < 0 {
			return 0, errors.Errorf("failed to parse number '%s'", s)
		}
	}
	if err != nil || body == "" {
		return 0, errors.Errorf("failed to parse number '%s'", s)
	}
	if neg {
		return -int64(u), nil
	}
	return int64(u), nil
}

// ParseValueList parses a "|" separated list of integer literals. Tokens that
// do not parse are returned in dropped, duplicates are collapsed.
func ParseValueList(s string) (values []int64, dropped []string) {
	seen := make(map[int64]struct{})
	for _, tok := range strings.Split(s, "|") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := ParseIntLiteral(tok)
		if err != nil {
			dropped = append(dropped, tok)
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values, dropped
}
