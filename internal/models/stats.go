package models

// PageStat is the accumulated time spent on one page of one book, in
// milliseconds. Within a ReadingTime there is at most one entry per page.
type PageStat struct {
	Page int   `json:"page"`
	Time int64 `json:"time"`
}

// ReadingTime is the per-book aggregate record. TimeSpent is derived: it always
// equals the sum of Time over PageStats. Title is a denormalized copy of the
// book title at record-creation time and is not refreshed on rename.
//
// The full []ReadingTime collection is the unit of persistence: it is read
// entirely at session start and written back entirely after every mutation.
type ReadingTime struct {
	BookID      int64      `json:"bookId"`
	Title       string     `json:"title"`
	TimeSpent   int64      `json:"timeSpent"`
	PageStats   []PageStat `json:"pageStats"`
	CurrentPage int        `json:"currentPage"`

	// LastRead is a unix-millisecond timestamp set on session close. Blobs
	// written before this field existed decode it as 0, which ranking treats
	// as "unknown".
	LastRead int64 `json:"lastRead,omitempty"`
}

// PageStatFor returns the entry for the given page, or nil.
func (rt *ReadingTime) PageStatFor(page int) *PageStat {
	for i := range rt.PageStats {
		if rt.PageStats[i].Page == page {
			return &rt.PageStats[i]
		}
	}
	return nil
}

// TotalPageTime sums the per-page times. A consistent record has
// TotalPageTime() == TimeSpent.
func (rt *ReadingTime) TotalPageTime() int64 {
	var sum int64
	for _, ps := range rt.PageStats {
		sum += ps.Time
	}
	return sum
}
