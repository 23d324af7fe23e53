package catalog

import "strings"

// CategoryAll accepts every category when filtering.
const CategoryAll = "All"

// Categories returns the filter chips in display order: "All" followed by the
// distinct categories in catalog order.
func Categories() []string {
	out := []string{CategoryAll}
	seen := map[string]struct{}{}
	for _, b := range books {
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		out = append(out, b.Category)
	}
	return out
}

// Filter returns the subsequence of entries matching both predicates, in the
// input order. The category must match exactly (CategoryAll accepts all); the
// query is a case-insensitive substring match against title or author, with
// the empty query matching everything.
func Filter(entries []Book, category, query string) []Book {
	needle := strings.ToLower(query)
	out := make([]Book, 0, len(entries))
	for _, b := range entries {
		if category != CategoryAll && b.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Author), needle) {
			continue
		}
		out = append(out, b)
	}
	return out
}
