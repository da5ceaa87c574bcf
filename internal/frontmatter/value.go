package frontmatter

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the shape of a metadata value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindList
)

// Value is a decoded front-matter value: a string, a number, or a list of
// strings.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	List []string
}

// StringValue returns a KindString value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// NumberValue returns a KindNumber value. Str keeps the literal text.
func NumberValue(n float64, literal string) Value {
	return Value{Kind: KindNumber, Num: n, Str: literal}
}

// ListValue returns a KindList value.
func ListValue(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Kind: KindList, List: items}
}

// String renders the value as text. Lists are joined with a single space.
func (v Value) String() string {
	switch v.Kind {
	case KindList:
		return strings.Join(v.List, " ")
	case KindNumber:
		if v.Str != "" {
			return v.Str
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return v.Str
	}
}

// Strings returns the list items, or a single-element slice for a
// non-empty scalar.
func (v Value) Strings() []string {
	if v.Kind == KindList {
		return v.List
	}
	s := v.String()
	if s == "" {
		return nil
	}
	return []string{s}
}

// Int interprets the value as an integer. Numbers are truncated, strings
// must parse as a number; anything else, including numbers outside the
// int range, reports false.
func (v Value) Int() (int, bool) {
	switch v.Kind {
	case KindNumber:
		return toInt(v.Num)
	case KindString:
		if n, ok := parseNumber(strings.TrimSpace(v.Str)); ok {
			return toInt(n)
		}
	}
	return 0, false
}

func toInt(f float64) (int, bool) {
	if f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

// parseNumber accepts finite decimal numbers only.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	// ParseFloat also accepts "Inf", "NaN" and hex floats.
	for _, r := range s {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return 0, false
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// Metadata maps front-matter keys to their values.
type Metadata map[string]Value

// Lookup returns the value of the first key present.
func (m Metadata) Lookup(keys ...string) (Value, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// String returns the text of the first key present with a non-empty value.
func (m Metadata) String(keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

// Int returns the first key that reads as an integer.
func (m Metadata) Int(keys ...string) (int, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if n, ok := v.Int(); ok {
				return n, true
			}
		}
	}
	return 0, false
}
