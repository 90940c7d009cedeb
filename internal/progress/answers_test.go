package progress

import "testing"

func TestAnswerSetLookup(t *testing.T) {
	set := AnswerSet{
		{Index: 1, Text: "first"},
		{Index: 2, Text: ""},
	}

	if text, ok := set.Lookup(1); !ok || text != "first" {
		t.Fatalf("unexpected lookup result: %q %v", text, ok)
	}

	if text, ok := set.Lookup(2); !ok || text != "" {
		t.Fatalf("expected empty answer to be kept, got %q %v", text, ok)
	}

	if _, ok := set.Lookup(3); ok {
		t.Fatalf("expected missing index")
	}

	if got := set.TextOrPlaceholder(3); got != NoAnswer {
		t.Fatalf("expected placeholder, got %q", got)
	}

	if set.Empty() || set.Len() != 2 {
		t.Fatalf("unexpected size: %d", set.Len())
	}

	if !(AnswerSet{}).Empty() {
		t.Fatalf("expected empty set")
	}
}
