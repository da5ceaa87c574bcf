package frontmatter

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseWithoutFrontMatter(t *testing.T) {
	inputs := []string{
		"",
		"Just a body.",
		"Line one\n---\nkey: value\n---\n",
		" ---\nkey: value\n---\nbody",
		"--- not a delimiter\nkey: v\n---\n",
		"\n---\nkey: value\n---\nbody",
	}
	for _, in := range inputs {
		doc := Parse(in)
		if doc.Meta != nil {
			t.Errorf("Parse(%q): expected nil metadata, got %v", in, doc.Meta)
		}
		if doc.Body != in {
			t.Errorf("Parse(%q): body = %q, want input unchanged", in, doc.Body)
		}
	}
}

func TestParseUnclosedBlockFailsOpen(t *testing.T) {
	in := "---\ntitle: Lost\nimages: [a.png]\nno closing line"
	doc := Parse(in)
	if doc.Meta != nil {
		t.Fatalf("expected nil metadata, got %v", doc.Meta)
	}
	if doc.Body != in {
		t.Errorf("body = %q, want whole input", doc.Body)
	}
}

func TestParseBracketedList(t *testing.T) {
	doc := Parse("---\nimages: [\"a.png\",\"b.png\"]\n---\nBody")
	v, ok := doc.Meta["images"]
	if !ok {
		t.Fatal("missing images key")
	}
	if v.Kind != KindList {
		t.Fatalf("images kind = %v, want list", v.Kind)
	}
	if want := []string{"a.png", "b.png"}; !reflect.DeepEqual(v.List, want) {
		t.Errorf("images = %q, want %q", v.List, want)
	}
	if doc.Body != "Body" {
		t.Errorf("body = %q", doc.Body)
	}
}

func TestParseDashContinuation(t *testing.T) {
	doc := Parse("---\ntags:\n  - rpg\n  - indie\n---\n")
	v := doc.Meta["tags"]
	if want := []string{"rpg", "indie"}; !reflect.DeepEqual(v.List, want) {
		t.Errorf("tags = %q, want %q", v.List, want)
	}
}

func TestParseValueDecoding(t *testing.T) {
	text := strings.Join([]string{
		"---",
		"# a comment",
		"title: Hollow Knight",
		"",
		"imagesEnd: 12",
		"ratio: 1.5",
		"year: '2017'",
		"bare: [one, two , 'three']",
		"broken: [\"a\", b\", c]",
		"nested: [[1, 2], 3]",
		"empty:",
		"not a pair line",
		"---",
		"",
		"  The body.",
		"Second line.",
	}, "\n")
	doc := Parse(text)

	tests := []struct {
		key  string
		want Value
	}{
		{"title", StringValue("Hollow Knight")},
		{"imagesEnd", NumberValue(12, "12")},
		{"ratio", NumberValue(1.5, "1.5")},
		{"year", StringValue("'2017'")},
		{"bare", ListValue("one", "two", "three")},
		{"broken", ListValue("a", "b\"", "c")},
		{"nested", ListValue("[1", "2]", "3")},
		{"empty", ListValue()},
	}
	for _, tt := range tests {
		got, ok := doc.Meta[tt.key]
		if !ok {
			t.Errorf("missing key %q", tt.key)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s = %#v, want %#v", tt.key, got, tt.want)
		}
	}
	if len(doc.Meta) != len(tests) {
		t.Errorf("got %d keys, want %d: %v", len(doc.Meta), len(tests), doc.Meta)
	}
	if doc.Body != "The body.\nSecond line." {
		t.Errorf("body = %q", doc.Body)
	}
}

func TestParseNumericEdgeCases(t *testing.T) {
	doc := Parse("---\na: Inf\nb: NaN\nc: 0x1p-2\nd: -3\ne: 1e3\n---\n")
	for _, key := range []string{"a", "b", "c"} {
		if doc.Meta[key].Kind != KindString {
			t.Errorf("%s: expected string, got kind %v", key, doc.Meta[key].Kind)
		}
	}
	if n, ok := doc.Meta["d"].Int(); !ok || n != -3 {
		t.Errorf("d = %d, %v", n, ok)
	}
	if n, ok := doc.Meta["e"].Int(); !ok || n != 1000 {
		t.Errorf("e = %d, %v", n, ok)
	}
}

func TestParseItemReplacesScalar(t *testing.T) {
	doc := Parse("---\nvideos: abc\n- https://youtu.be/xyz123\n---\n")
	if want := []string{"https://youtu.be/xyz123"}; !reflect.DeepEqual(doc.Meta["videos"].List, want) {
		t.Errorf("videos = %#v", doc.Meta["videos"])
	}
}

func TestParseItemWithoutKeyIgnored(t *testing.T) {
	doc := Parse("---\n- orphan\ntitle: x\n---\nbody")
	if len(doc.Meta) != 1 {
		t.Errorf("expected only title, got %v", doc.Meta)
	}
}

func TestParseCRLF(t *testing.T) {
	doc := Parse("---\r\ntitle: Win\r\ntags:\r\n - a\r\n---\r\nBody\r\n")
	if doc.Meta["title"].Str != "Win" {
		t.Errorf("title = %q", doc.Meta["title"].Str)
	}
	if want := []string{"a"}; !reflect.DeepEqual(doc.Meta["tags"].List, want) {
		t.Errorf("tags = %q", doc.Meta["tags"].List)
	}
	if doc.Body != "Body\r\n" {
		t.Errorf("body = %q", doc.Body)
	}
}

func TestParseEmptyBody(t *testing.T) {
	doc := Parse("---\ntitle: x\n---")
	if doc.Meta == nil {
		t.Fatal("expected metadata")
	}
	if doc.Body != "" {
		t.Errorf("body = %q, want empty", doc.Body)
	}
}

func TestValueInt(t *testing.T) {
	tests := []struct {
		v    Value
		want int
		ok   bool
	}{
		{NumberValue(3.9, "3.9"), 3, true},
		{StringValue(" 7 "), 7, true},
		{StringValue("seven"), 0, false},
		{ListValue("1"), 0, false},
		{NumberValue(-5e18, "-5000000000000000000"), -5000000000000000000, true},
		{NumberValue(1e19, "1e19"), 0, false},
		{StringValue("-1e30"), 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.v.Int()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%#v.Int() = %d, %v; want %d, %v", tt.v, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMetadataLookup(t *testing.T) {
	m := Metadata{
		"start":  StringValue("x"),
		"videos": ListValue("a", "b"),
	}
	if _, ok := m.Int("imagesStart", "start"); ok {
		t.Error("non-numeric start should not read as int")
	}
	if v, ok := m.Lookup("video", "videos"); !ok || len(v.List) != 2 {
		t.Errorf("Lookup fallback failed: %#v %v", v, ok)
	}
	var nilMeta Metadata
	if nilMeta.String("summary") != "" {
		t.Error("nil metadata should read as empty")
	}
}

func TestSummary(t *testing.T) {
	long := strings.Repeat("x", 150)
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"from body", Parse("\n\nFirst line\nSecond"), "First line"},
		{"from metadata", Parse("---\nsummary: Short pitch\n---\nBody"), "Short pitch"},
		{"metadata list", Parse("---\nsummary:\n - one\n - two\n---\nBody"), "one two"},
		{"truncated", Document{Body: long}, strings.Repeat("x", 140) + Ellipsis},
		{"empty", Document{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.Summary(0); got != tt.want {
				t.Errorf("Summary = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := Truncate("héllo wörld", 5); got != "héllo"+Ellipsis {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate = %q", got)
	}
}
