// Package stats holds the pure reading-statistics core: folding elapsed-time
// observations into per-book ReadingTime records, and deriving the display
// order of the book list from them. Nothing in here touches storage; callers
// persist the returned collection themselves.
package stats

import (
	"time"

	"booktime/internal/models"
)

// Accumulate folds one elapsed-time observation into the collection and
// returns the updated collection.
//
// If no record exists for book.ID a new one is appended. Otherwise the
// matching record's page entry is incremented (or created), TimeSpent is
// recomputed as the sum over all page entries so it can never drift, and
// CurrentPage moves to the observed page. Records of other books are never
// mutated; the touched record is rewritten copy-on-write so callers holding
// the input slice do not observe the change.
//
// elapsedMs of 0 is legal: it leaves TimeSpent unchanged but may still create
// a zero-time page entry. The page index is not validated against the book's
// page count; an out-of-range page is accumulated as-is.
func Accumulate(stats []models.ReadingTime, book models.Book, elapsedMs int64, page int) []models.ReadingTime {
	out := make([]models.ReadingTime, len(stats))
	copy(out, stats)

	for i := range out {
		if out[i].BookID != book.ID {
			continue
		}

		rec := out[i]
		rec.PageStats = append([]models.PageStat(nil), rec.PageStats...)

		if ps := rec.PageStatFor(page); ps != nil {
			ps.Time += elapsedMs
		} else {
			rec.PageStats = append(rec.PageStats, models.PageStat{Page: page, Time: elapsedMs})
		}

		rec.TimeSpent = rec.TotalPageTime()
		rec.CurrentPage = page
		out[i] = rec
		return out
	}

	return append(out, models.ReadingTime{
		BookID:      book.ID,
		Title:       book.Title,
		TimeSpent:   elapsedMs,
		PageStats:   []models.PageStat{{Page: page, Time: elapsedMs}},
		CurrentPage: page,
	})
}

// Touch sets the record's LastRead timestamp, creating an empty record if the
// book has none yet. Used on session close so "continue reading" survives a
// restart.
func Touch(stats []models.ReadingTime, book models.Book, at time.Time) []models.ReadingTime {
	out := make([]models.ReadingTime, len(stats))
	copy(out, stats)

	for i := range out {
		if out[i].BookID == book.ID {
			out[i].LastRead = at.UnixMilli()
			return out
		}
	}

	return append(out, models.ReadingTime{
		BookID:    book.ID,
		Title:     book.Title,
		PageStats: []models.PageStat{},
		LastRead:  at.UnixMilli(),
	})
}

// Find returns the record for the given book id, or nil.
func Find(stats []models.ReadingTime, bookID int64) *models.ReadingTime {
	for i := range stats {
		if stats[i].BookID == bookID {
			return &stats[i]
		}
	}
	return nil
}

// Elapsed returns the milliseconds between start and now, clamped at zero so a
// clock rollback can never produce a negative observation.
func Elapsed(start, now time.Time) int64 {
	ms := now.Sub(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
