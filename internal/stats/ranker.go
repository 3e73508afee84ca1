package stats

import (
	"sort"

	"booktime/internal/models"
)

// RankedBook is a book enriched with its effective reading statistics, in
// display order. IsLastRead marks the single "continue reading" book.
type RankedBook struct {
	models.Book

	TimeSpent  int64 `json:"timeSpent"`
	IsLastRead bool  `json:"isLastRead"`
}

// Rank orders the book collection for display: the most recently read book
// first, the rest by total reading time descending. Both steps are stable, so
// ties keep the original order.
//
// Effective values come from the matching ReadingTime where one exists:
// TimeSpent defaults to 0, CurrentPage to the book's own, and LastRead falls
// back to the book's own timestamp for records written before LastRead was
// tracked. The IsLastRead flag is only asserted when the stats collection is
// non-empty; freshly fetched books all carry a default timestamp, and until
// something has actually been read none of them deserves the highlight.
func Rank(books []models.Book, st []models.ReadingTime) []RankedBook {
	if len(books) == 0 {
		return []RankedBook{}
	}

	enriched := make([]RankedBook, 0, len(books))
	for _, b := range books {
		rb := RankedBook{Book: b}
		if rec := Find(st, b.ID); rec != nil {
			rb.TimeSpent = rec.TimeSpent
			rb.CurrentPage = rec.CurrentPage
			if rec.LastRead > 0 {
				rb.LastRead = rec.LastRead
			}
		}
		enriched = append(enriched, rb)
	}

	featured := 0
	for i, rb := range enriched {
		if rb.LastRead > enriched[featured].LastRead {
			featured = i
		}
	}

	rest := make([]RankedBook, 0, len(enriched)-1)
	rest = append(rest, enriched[:featured]...)
	rest = append(rest, enriched[featured+1:]...)
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].TimeSpent > rest[j].TimeSpent
	})

	head := enriched[featured]
	head.IsLastRead = len(st) > 0

	return append([]RankedBook{head}, rest...)
}
