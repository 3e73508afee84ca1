package models

// Book is the shape the upstream book source returns. Pages are immutable once
// fetched; LastRead and CurrentPage are the only fields this service touches.
type Book struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Pages       []string `json:"pages"`

	// LastRead is a unix-millisecond timestamp, set on session close.
	LastRead    int64 `json:"lastRead"`
	CurrentPage int   `json:"currentPage"`

	// StartPage is a one-shot "continue from page N" hint. It is consumed when a
	// session starts and never persisted.
	StartPage *int `json:"startPage,omitempty"`
}

// PageCount returns the number of pages, 0 for a book with no pages.
func (b Book) PageCount() int {
	return len(b.Pages)
}
