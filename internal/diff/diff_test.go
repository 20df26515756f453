package diff

import (
	"reflect"
	"strings"
	"testing"
)

func TestRegionsIdentical(t *testing.T) {
	lines := []string{"{", `  "a": 1`, "}"}
	if got := Regions(lines, append([]string(nil), lines...)); len(got) != 0 {
		t.Fatalf("expected no regions, got %#v", got)
	}
	if got := Regions(nil, nil); len(got) != 0 {
		t.Fatalf("expected no regions for empty input, got %#v", got)
	}
}

func TestRegionsSingleReplace(t *testing.T) {
	got := Regions([]string{`{"a":1}`}, []string{`{"a":2}`})
	want := []Region{{Kind: Replace, Expected: []string{`{"a":1}`}, Found: []string{`{"a":2}`}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestRegionsMultipleKinds(t *testing.T) {
	expected := []string{"a", "b", "c", "d", "e"}
	found := []string{"a", "B", "c", "e", "f"}
	got := Regions(expected, found)
	if len(got) != 3 {
		t.Fatalf("expected 3 regions, got %d: %#v", len(got), got)
	}
	if got[0].Kind != Replace || got[0].ExpectedStart != 1 || got[0].Expected[0] != "b" || got[0].Found[0] != "B" {
		t.Fatalf("region 0: %#v", got[0])
	}
	if got[1].Kind != Delete || got[1].Expected[0] != "d" || got[1].Found != nil {
		t.Fatalf("region 1: %#v", got[1])
	}
	if got[2].Kind != Insert || got[2].FoundStart != 4 || got[2].Found[0] != "f" || got[2].Expected != nil {
		t.Fatalf("region 2: %#v", got[2])
	}
}

func TestRegionsRepeatedLinesNotJunked(t *testing.T) {
	var expected, found []string
	for i := 0; i < 300; i++ {
		expected = append(expected, "},")
		found = append(found, "},")
	}
	expected[150] = "["
	found[150] = "]"
	got := Regions(expected, found)
	if len(got) != 1 || got[0].Kind != Replace || got[0].ExpectedStart != 150 || got[0].FoundStart != 150 {
		t.Fatalf("expected one region at 150, got %#v", got)
	}
}

func TestUnifiedProducesHunks(t *testing.T) {
	body, oversize := Unified("snapshot", "actual", []byte("line1\nline2\n"), []byte("line1\nline3\n"), Options{Context: 3})
	if oversize {
		t.Fatalf("unexpected oversize")
	}
	for _, w := range []string{"--- snapshot", "+++ actual", "@@", "-line2", "+line3"} {
		if !strings.Contains(body, w) {
			t.Fatalf("missing %q in %q", w, body)
		}
	}
}

func TestUnifiedOversize(t *testing.T) {
	body, oversize := Unified("a", "b", []byte("12345"), []byte("67890"), Options{MaxBytes: 4})
	if !oversize || !strings.Contains(body, "oversize") {
		t.Fatalf("expected oversize placeholder, got %q (%v)", body, oversize)
	}
}

func TestKindString(t *testing.T) {
	if Replace.String() != "replace" || Delete.String() != "delete" || Insert.String() != "insert" || Kind('x').String() != "unknown" {
		t.Fatalf("unexpected kind names")
	}
}
