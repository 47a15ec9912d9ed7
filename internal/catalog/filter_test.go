package catalog

import (
	"testing"
	"time"

	"holdco-backend/internal/model"
)

func seedListings() []model.Listing {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []model.Listing{
		{ID: "a1", Kind: model.KindAgro, Title: "Organic Red Apples", Category: "Fruit", Price: 12.5, CreatedAt: base.Add(4 * time.Hour)},
		{ID: "a2", Kind: model.KindAgro, Title: "Organic Vegetable Seeds", Category: "Seeds", Price: 4.99, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "a3", Kind: model.KindAgro, Title: "Premium Organic Fertilizer", Category: "Supplies", Price: 29, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "a4", Kind: model.KindAgro, Title: "Heritage Tomato Plants", Description: "Grown with organic methods", Category: "Seeds", Price: 8, CreatedAt: base.Add(1 * time.Hour)},
		{ID: "a5", Kind: model.KindAgro, Title: "Wheat Flour 5kg", Category: "Grain", Price: 6.75, CreatedAt: base},
		{ID: "a6", Kind: model.KindAgro, Title: "Unpriced Sampler", Category: "Grain", Price: 0, CreatedAt: base},
	}
}

func ids(items []model.Listing) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTextFilterCaseInsensitiveSubstring(t *testing.T) {
	items := seedListings()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"a1", "a2", "a3", "a4", "a5", "a6"}},
		{"organic", []string{"a1", "a2", "a3", "a4"}}, // a4 matches via description
		{"ORGANIC", []string{"a1", "a2", "a3", "a4"}},
		{"apple", []string{"a1"}},
		{"zzz", []string{}},
	}
	for _, tc := range tests {
		got := Apply(items, Filter{Query: tc.query})
		if !equalIDs(ids(got), tc.want) {
			t.Errorf("query %q: got %v want %v", tc.query, ids(got), tc.want)
		}
	}
}

func TestCategoryFilterSentinelAndExactMatch(t *testing.T) {
	items := seedListings()

	if got := Apply(items, Filter{Category: model.CategoryAll}); len(got) != len(items) {
		t.Errorf("All sentinel: got %d items, want %d", len(got), len(items))
	}
	if got := Apply(items, Filter{Category: ""}); len(got) != len(items) {
		t.Errorf("empty category: got %d items, want %d", len(got), len(items))
	}
	if got := Apply(items, Filter{Category: "Seeds"}); !equalIDs(ids(got), []string{"a2", "a4"}) {
		t.Errorf("Seeds: got %v", ids(got))
	}
	// Exact match is case-sensitive.
	if got := Apply(items, Filter{Category: "seeds"}); len(got) != 0 {
		t.Errorf("lowercase category should match nothing, got %v", ids(got))
	}
}

func TestTextAndCategoryCompose(t *testing.T) {
	items := seedListings()
	got := Apply(items, Filter{Query: "organic", Category: "Seeds"})
	if !equalIDs(ids(got), []string{"a2", "a4"}) {
		t.Errorf("composed filter: got %v", ids(got))
	}
}

func TestPriceRangeExcludesUnpriced(t *testing.T) {
	items := seedListings()

	got := Apply(items, Filter{MinPrice: 5, MaxPrice: 15})
	if !equalIDs(ids(got), []string{"a1", "a4", "a5"}) {
		t.Errorf("range [5,15]: got %v", ids(got))
	}
	// A zero price fails closed when any bound is active.
	for _, it := range got {
		if it.ID == "a6" {
			t.Error("unpriced listing leaked through an active price bound")
		}
	}
	// Open-ended upper bound.
	got = Apply(items, Filter{MinPrice: 10})
	if !equalIDs(ids(got), []string{"a1", "a3"}) {
		t.Errorf("min only: got %v", ids(got))
	}
}

func TestBucketLabels(t *testing.T) {
	tests := []struct {
		label    string
		min, max float64
	}{
		{"under_100", 0.01, 100},
		{"100_500", 100, 500},
		{"over_500", 500, 0},
		{"over_500k", 500_000, 0},
		{"bogus", 0, 0},
	}
	for _, tc := range tests {
		min, max := Bucket(tc.label)
		if min != tc.min || max != tc.max {
			t.Errorf("Bucket(%q) = (%v,%v), want (%v,%v)", tc.label, min, max, tc.min, tc.max)
		}
	}
}

func TestSortStabilityAndReversal(t *testing.T) {
	items := seedListings()[:5] // unique titles, no ties

	asc := Apply(items, Filter{Sort: SortNameAsc})
	desc := Apply(items, Filter{Sort: SortNameDesc})
	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Fatalf("name desc is not the exact reverse of asc: %v vs %v", ids(asc), ids(desc))
		}
	}

	// Idempotence: sorting twice by the same key gives the same order.
	again := Apply(asc, Filter{Sort: SortNameAsc})
	if !equalIDs(ids(asc), ids(again)) {
		t.Errorf("re-sorting changed order: %v vs %v", ids(asc), ids(again))
	}

	// Stability: equal prices keep input order.
	tied := []model.Listing{
		{ID: "t1", Title: "B", Price: 10},
		{ID: "t2", Title: "A", Price: 10},
		{ID: "t3", Title: "C", Price: 5},
	}
	got := Apply(tied, Filter{Sort: SortPriceAsc})
	if !equalIDs(ids(got), []string{"t3", "t1", "t2"}) {
		t.Errorf("stable price sort: got %v", ids(got))
	}
}

func TestSortNewestFirst(t *testing.T) {
	items := seedListings()[:3]
	got := Apply(items, Filter{Sort: SortNewest})
	if !equalIDs(ids(got), []string{"a1", "a2", "a3"}) {
		t.Errorf("newest first: got %v", ids(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := seedListings()
	before := ids(items)
	_ = Apply(items, Filter{Sort: SortNameDesc, Query: "o"})
	if !equalIDs(before, ids(items)) {
		t.Error("Apply reordered the input slice")
	}
}

func TestPage(t *testing.T) {
	items := seedListings()

	page, total := Page(items, 2, 0)
	if total != 6 || !equalIDs(ids(page), []string{"a1", "a2"}) {
		t.Errorf("first page: got %v total %d", ids(page), total)
	}
	page, _ = Page(items, 2, 4)
	if !equalIDs(ids(page), []string{"a5", "a6"}) {
		t.Errorf("last page: got %v", ids(page))
	}
	page, total = Page(items, 2, 10)
	if len(page) != 0 || total != 6 {
		t.Errorf("offset past end: got %v total %d", ids(page), total)
	}
}

func TestCategories(t *testing.T) {
	got := Categories(seedListings())
	want := []string{"All", "Fruit", "Grain", "Seeds", "Supplies"}
	if !equalIDs(got, want) {
		t.Errorf("categories: got %v want %v", got, want)
	}
}
