package ranking

import (
	"fmt"
	"testing"
)

func TestTopSortsAndTruncates(t *testing.T) {
	people := map[string]any{
		"a": map[string]any{"compatibilityScore": float64(40)},
		"b": map[string]any{"compatibilityScore": float64(90)},
		"c": map[string]any{"compatibilityScore": float64(70)},
		"d": map[string]any{"compatibilityScore": float64(85)},
	}

	top := Top(people, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(top))
	}
	for i, want := range []string{"b", "d", "c"} {
		if top[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, top[i].ID)
		}
	}
}

func TestTopExcludesUnusableRecords(t *testing.T) {
	people := map[string]any{
		"failed":   map[string]any{"compatibilityScore": float64(-1)},
		"unscored": map[string]any{"linkedin": map[string]any{}},
		"junk":     "not an object",
		"string":   map[string]any{"compatibilityScore": "82.5"},
		"zero":     map[string]any{"compatibilityScore": float64(0)},
	}

	top := Top(people, 0)
	if len(top) != 2 {
		t.Fatalf("expected 2 usable candidates, got %d: %v", len(top), top)
	}
	if top[0].ID != "string" || top[1].ID != "zero" {
		t.Fatalf("unexpected order: %s, %s", top[0].ID, top[1].ID)
	}
}

func TestTopBreaksTiesOnID(t *testing.T) {
	people := make(map[string]any, 6)
	for i := 0; i < 6; i++ {
		people[fmt.Sprintf("id-%d", i)] = map[string]any{"compatibilityScore": float64(50)}
	}

	top := Top(people, 0)
	for i, c := range top {
		if want := fmt.Sprintf("id-%d", i); c.ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, c.ID)
		}
	}
}
