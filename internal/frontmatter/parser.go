// Package frontmatter splits catalog text documents into a metadata block
// and a free-form body.
//
// The metadata block is a small YAML-like subset delimited by "---" lines:
//
//	---
//	title: Some Game
//	images: ["a.png", "b.png"]
//	tags:
//	  - rpg
//	  - indie
//	imagesEnd: 4
//	---
//	Body text.
package frontmatter

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes a front-matter block.
const Delimiter = "---"

// Document is a parsed text document. Meta is nil when the text carries no
// complete front-matter block.
type Document struct {
	Meta Metadata
	Body string
}

// state is the parser position within a document.
type state int

const (
	stateSeeking state = iota // before the opening delimiter
	stateBlock                // inside the block, expecting key: value
	stateList                 // inside the block, after a key that takes "- item" lines
	stateBody                 // after the closing delimiter
)

// tokenKind classifies one line of input.
type tokenKind int

const (
	tokSkip tokenKind = iota
	tokDelimiter
	tokPair
	tokItem
)

type token struct {
	kind  tokenKind
	key   string
	value string
}

var pairPattern = regexp.MustCompile(`^\s*([A-Za-z0-9_\-]+)\s*:\s*(.*)$`)

// tokenize classifies a single line. Delimiters must start at column 0;
// list items and pairs may be indented.
func tokenize(line string) token {
	line = strings.TrimRight(line, " \t\r")
	if line == Delimiter {
		return token{kind: tokDelimiter}
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return token{kind: tokSkip}
	}
	if strings.HasPrefix(trimmed, "-") {
		return token{kind: tokItem, value: unquote(strings.TrimSpace(trimmed[1:]))}
	}
	if m := pairPattern.FindStringSubmatch(line); m != nil {
		return token{kind: tokPair, key: m[1], value: strings.TrimSpace(m[2])}
	}
	return token{kind: tokSkip}
}

// Parse splits text into metadata and body. Text that does not open with a
// delimiter line, or whose block is never closed, is returned whole as the
// body with no metadata. Parse never fails.
func Parse(text string) Document {
	st := stateSeeking
	meta := Metadata{}
	key := ""
	body := ""

	pos := 0
	for pos <= len(text) && st != stateBody {
		line, next := text[pos:], len(text)+1
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line, next = line[:i], pos+i+1
		}
		tok := tokenize(line)

		switch st {
		case stateSeeking:
			if tok.kind != tokDelimiter {
				return Document{Body: text}
			}
			st = stateBlock

		case stateBlock, stateList:
			switch tok.kind {
			case tokDelimiter:
				if next <= len(text) {
					body = text[next:]
				}
				st = stateBody
			case tokPair:
				key = tok.key
				meta[key] = decodeValue(tok.value)
				st = stateBlock
				if tok.value == "" {
					st = stateList
				}
			case tokItem:
				// Items before any key have nothing to attach to.
				if key != "" {
					v := meta[key]
					if v.Kind != KindList {
						v = ListValue()
					}
					v.List = append(v.List, tok.value)
					meta[key] = v
					st = stateList
				}
			}
		}
		pos = next
	}

	if st != stateBody {
		return Document{Body: text}
	}
	return Document{Meta: meta, Body: strings.TrimLeft(body, " \t\r\n")}
}

// decodeValue applies the value rules: bracketed lists, empty lists,
// numbers, then literal strings.
func decodeValue(raw string) Value {
	switch {
	case len(raw) >= 2 && strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"):
		items, err := parseFlowList(raw)
		if err != nil {
			items = splitList(raw)
		}
		return ListValue(items...)
	case raw == "":
		return ListValue()
	}
	if n, ok := parseNumber(raw); ok {
		return NumberValue(n, raw)
	}
	return StringValue(raw)
}

// parseFlowList parses a bracketed list strictly as a YAML flow sequence of
// scalars, which covers JSON arrays.
func parseFlowList(raw string) ([]string, error) {
	var items []any
	if err := yaml.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case int, int64, uint64, float64, bool:
			out = append(out, fmt.Sprint(v))
		default:
			return nil, fmt.Errorf("unsupported list element %T", item)
		}
	}
	return out, nil
}

// splitList is the lenient fallback: split on commas and strip quotes.
func splitList(raw string) []string {
	inner := raw[1 : len(raw)-1]
	var out []string
	for _, part := range strings.Split(inner, ",") {
		part = unquote(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
