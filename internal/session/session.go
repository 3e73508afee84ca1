// Package session models the reading-session state machine as an explicit
// value passed in and out of its transitions, instead of ambient "current
// book" state. A session exists from the moment a book is opened until the
// reader is closed; page turns and the close both emit an elapsed-time
// observation for the page that was on display during the measured interval.
package session

import (
	"errors"
	"time"

	"booktime/internal/models"
	"booktime/internal/stats"
)

// Direction of a page turn.
type Direction string

const (
	Next Direction = "next"
	Prev Direction = "prev"
)

var ErrBadDirection = errors.New("direction must be \"next\" or \"prev\"")

// Session is the state of one open reader. PageCount is captured at start so
// turns can be clamped without re-fetching the book.
type Session struct {
	BookID    int64  `json:"book_id"`
	Title     string `json:"title"`
	Page      int    `json:"page"`
	PageCount int    `json:"page_count"`
	StartedAt int64  `json:"started_at"` // unix milliseconds
}

// Observation is an elapsed-time measurement to fold into the stats
// collection: ElapsedMs milliseconds were spent on Page.
type Observation struct {
	Page      int
	ElapsedMs int64
}

// Start opens a session on the given book. The initial page is resolved in
// order: the book's one-shot StartPage hint, the stats record's current page,
// the book's own current page, then 0.
func Start(book models.Book, st []models.ReadingTime, now time.Time) Session {
	page := 0
	switch {
	case book.StartPage != nil:
		page = *book.StartPage
	case stats.Find(st, book.ID) != nil:
		page = stats.Find(st, book.ID).CurrentPage
	default:
		page = book.CurrentPage
	}

	return Session{
		BookID:    book.ID,
		Title:     book.Title,
		Page:      page,
		PageCount: book.PageCount(),
		StartedAt: now.UnixMilli(),
	}
}

// Turn measures the interval since the last checkpoint against the page that
// was on display (the pre-turn page), then advances the page and restarts the
// clock. The page is clamped to [0, PageCount-1]; a turn at the edge still
// accumulates but does not move.
func Turn(s Session, dir Direction, now time.Time) (Session, Observation, error) {
	obs := Observation{
		Page:      s.Page,
		ElapsedMs: stats.Elapsed(time.UnixMilli(s.StartedAt), now),
	}

	switch dir {
	case Next:
		if s.Page < s.PageCount-1 {
			s.Page++
		}
	case Prev:
		if s.Page > 0 {
			s.Page--
		}
	default:
		return s, Observation{}, ErrBadDirection
	}

	s.StartedAt = now.UnixMilli()
	return s, obs, nil
}

// Close finalizes the session, measuring the interval against the page that
// is currently on display. The caller persists the observation and discards
// the session.
func Close(s Session, now time.Time) Observation {
	return Observation{
		Page:      s.Page,
		ElapsedMs: stats.Elapsed(time.UnixMilli(s.StartedAt), now),
	}
}
