package catalog

import "github.com/shopspring/decimal"

// Book is one immutable catalog entry. The catalog is compiled in; there is
// no runtime mutation and no backing store.
type Book struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Rating      float64         `json:"rating"`
	Description string          `json:"description"`
}

var books = []Book{
	{
		ID:          1,
		Title:       "The Midnight Library",
		Author:      "Matt Haig",
		Price:       decimal.RequireFromString("24.99"),
		Category:    "Fiction",
		Rating:      4.5,
		Description: "Between life and death there is a library, and within that library, the shelves go on forever.",
	},
	{
		ID:          2,
		Title:       "Atomic Habits",
		Author:      "James Clear",
		Price:       decimal.RequireFromString("27.99"),
		Category:    "Self-Help",
		Rating:      4.8,
		Description: "No matter your goals, Atomic Habits offers a proven framework for improving--every day.",
	},
	{
		ID:          3,
		Title:       "Project Hail Mary",
		Author:      "Andy Weir",
		Price:       decimal.RequireFromString("28.99"),
		Category:    "Sci-Fi",
		Rating:      4.7,
		Description: "A lone astronaut must save the earth from disaster in this incredible new science-based thriller.",
	},
	{
		ID:          4,
		Title:       "Psychology of Money",
		Author:      "Morgan Housel",
		Price:       decimal.RequireFromString("22.99"),
		Category:    "Business",
		Rating:      4.6,
		Description: "Doing well with money isn't necessarily about what you know. It's about how you behave.",
	},
	{
		ID:          5,
		Title:       "Dune",
		Author:      "Frank Herbert",
		Price:       decimal.RequireFromString("19.99"),
		Category:    "Sci-Fi",
		Rating:      4.9,
		Description: "A stunning blend of adventure and mysticism, environmentalism and politics.",
	},
	{
		ID:          6,
		Title:       "Thinking, Fast and Slow",
		Author:      "Daniel Kahneman",
		Price:       decimal.RequireFromString("29.99"),
		Category:    "Psychology",
		Rating:      4.5,
		Description: "The major New York Times bestseller that challenges the judgments we make.",
	},
}

// Books returns the full catalog in its fixed order. The returned slice is a
// copy; callers may not mutate catalog entries.
func Books() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}

// FindByID returns the catalog entry with the given id.
func FindByID(id int) (Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}
