// internal/content/article/aggregate_test.go
//
// Unit-tests for the listing-join fold.
//
// Run: go test ./internal/content/article -v

package article

import (
	"reflect"
	"testing"
)

func strp(s string) *string   { return &s }
func intp(i int) *int         { return &i }
func f64p(f float64) *float64 { return &f }

func TestAggregate_NoChildren(t *testing.T) {
	rows := []Row{{ID: 1, Title: "T"}}

	got := Aggregate(rows)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}

	a := got[0]
	if a.ID != 1 || a.Title != "T" {
		t.Fatalf("scalars not copied: %+v", a)
	}
	if a.Sections == nil || len(a.Sections) != 0 {
		t.Fatalf("sections must be an empty slice, got %#v", a.Sections)
	}
	if a.Products == nil || len(a.Products) != 0 {
		t.Fatalf("products must be an empty slice, got %#v", a.Products)
	}
}

func TestAggregate_MultipleSectionsOneProduct(t *testing.T) {
	rows := []Row{
		{ID: 1, Title: "T", Subtitle: strp("St1"), SectionContent: strp("s1")},
		{ID: 1, Title: "T", Subtitle: strp("St2"), SectionContent: strp("s2")},
		{ID: 1, Title: "T", ProductName: strp("P1"), Rating: f64p(4.5), DisplayOrder: intp(10)},
	}

	got := Aggregate(rows)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}

	wantSections := []Section{
		{Title: "St1", Content: "s1"},
		{Title: "St2", Content: "s2"},
	}
	if !reflect.DeepEqual(got[0].Sections, wantSections) {
		t.Fatalf("sections = %+v, want %+v", got[0].Sections, wantSections)
	}

	if len(got[0].Products) != 1 {
		t.Fatalf("products = %+v, want one entry", got[0].Products)
	}
	p := got[0].Products[0]
	if p.Name != "P1" || p.Rating != 4.5 || p.DisplayOrder != 10 {
		t.Fatalf("product = %+v", p)
	}
}

func TestAggregate_RowWithBothFragments(t *testing.T) {
	rows := []Row{
		{
			ID:             1,
			Subtitle:       strp("St"),
			SectionContent: strp("s"),
			ProductName:    strp("P"),
		},
	}

	got := Aggregate(rows)
	if len(got[0].Sections) != 1 || len(got[0].Products) != 1 {
		t.Fatalf("a row carrying both fragments must feed both sequences: %+v", got[0])
	}
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	rows := []Row{
		{ID: 2, Title: "second-created"},
		{ID: 1, Title: "first-created"},
		{ID: 2, SectionContent: strp("late row for 2")},
	}

	got := Aggregate(rows)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("order = [%d, %d], want [2, 1]", got[0].ID, got[1].ID)
	}
	if len(got[0].Sections) != 1 {
		t.Fatal("late row must append to the already-seen article")
	}
}

func TestAggregate_EmptySectionContentSkipped(t *testing.T) {
	rows := []Row{
		{ID: 1, Subtitle: strp("orphan title"), SectionContent: strp("")},
		{ID: 1, ProductName: strp("")},
	}

	got := Aggregate(rows)
	if len(got[0].Sections) != 0 || len(got[0].Products) != 0 {
		t.Fatalf("empty fragments must not create children: %+v", got[0])
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	rows := []Row{
		{ID: 1, Title: "T", Subtitle: strp("St"), SectionContent: strp("s")},
		{ID: 1, ProductName: strp("P")},
		{ID: 2, Title: "U"},
	}

	first := Aggregate(rows)
	second := Aggregate(rows)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("re-running the fold on the same input must yield a deep-equal result")
	}
}

// Children keep row order even when display_order disagrees with it.  The
// fold deliberately does not sort; callers relying on display_order must
// sort the slices themselves.
func TestAggregate_NoDisplayOrderSort(t *testing.T) {
	rows := []Row{
		{ID: 1, ProductName: strp("second-by-order"), DisplayOrder: intp(20)},
		{ID: 1, ProductName: strp("first-by-order"), DisplayOrder: intp(10)},
	}

	got := Aggregate(rows)
	if got[0].Products[0].Name != "second-by-order" {
		t.Fatalf("children re-sorted: %+v", got[0].Products)
	}
}
