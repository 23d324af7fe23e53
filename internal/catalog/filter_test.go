package catalog

import (
	"reflect"
	"testing"
)

func titles(entries []Book) []string {
	out := make([]string, 0, len(entries))
	for _, b := range entries {
		out = append(out, b.Title)
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		category string
		query    string
		want     []string
	}{
		{
			name:     "all categories empty query returns everything",
			category: CategoryAll,
			query:    "",
			want: []string{
				"The Midnight Library", "Atomic Habits", "Project Hail Mary",
				"Psychology of Money", "Dune", "Thinking, Fast and Slow",
			},
		},
		{
			name:     "exact category",
			category: "Sci-Fi",
			query:    "",
			want:     []string{"Project Hail Mary", "Dune"},
		},
		{
			name:     "category and query intersect",
			category: "Sci-Fi",
			query:    "dune",
			want:     []string{"Dune"},
		},
		{
			name:     "query matches author case-insensitively",
			category: CategoryAll,
			query:    "HAIG",
			want:     []string{"The Midnight Library"},
		},
		{
			name:     "query with no match",
			category: CategoryAll,
			query:    "nonexistent",
			want:     []string{},
		},
		{
			name:     "category excludes query match",
			category: "Fiction",
			query:    "dune",
			want:     []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := titles(Filter(Books(), tc.category, tc.query))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected result: got %v want %v", got, tc.want)
			}
		})
	}
}

func TestFilterPredicatesCommute(t *testing.T) {
	t.Parallel()

	categories := Categories()
	queries := []string{"", "a", "dune", "HAIG", "money", "zzz"}

	for _, category := range categories {
		for _, query := range queries {
			categoryFirst := Filter(Filter(Books(), category, ""), CategoryAll, query)
			queryFirst := Filter(Filter(Books(), CategoryAll, query), category, "")
			if !reflect.DeepEqual(titles(categoryFirst), titles(queryFirst)) {
				t.Fatalf("order of predicates changed result for category=%q query=%q", category, query)
			}
		}
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	want := []string{"All", "Fiction", "Self-Help", "Sci-Fi", "Business", "Psychology"}
	if got := Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected categories: %v", got)
	}
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	book, ok := FindByID(5)
	if !ok || book.Title != "Dune" {
		t.Fatalf("expected Dune for id 5, got %+v ok=%v", book, ok)
	}
	if _, ok := FindByID(99); ok {
		t.Fatal("expected missing id to report not found")
	}
}

func TestBooksReturnsCopy(t *testing.T) {
	t.Parallel()

	first := Books()
	first[0].Title = "mutated"
	if Books()[0].Title != "The Midnight Library" {
		t.Fatal("catalog must not be mutable through Books()")
	}
}
