package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booktime/internal/catalog"
	"booktime/internal/models"
	"booktime/internal/repository"
	"booktime/internal/session"
	"booktime/internal/stats"
)

var (
	ErrNoSession    = errors.New("no open reading session")
	ErrBookNotFound = errors.New("book not found")
)

// ReadingService orchestrates the session state machine against the stores:
// it resolves books, runs the pure transitions, folds the resulting
// elapsed-time observations into the stats collection and persists the whole
// collection after every mutation.
type ReadingService interface {
	Stats(ctx context.Context, identity string) ([]models.ReadingTime, error)
	Open(ctx context.Context, identity string, bookID int64, startPage *int) (session.Session, error)
	Turn(ctx context.Context, identity string, dir session.Direction) (session.Session, error)
	Close(ctx context.Context, identity string) error
}

type readingService struct {
	source    catalog.Source
	statsRepo repository.StatsRepository
	sessions  repository.SessionStore
	now       func() time.Time
}

func NewReadingService(source catalog.Source, statsRepo repository.StatsRepository, sessions repository.SessionStore) ReadingService {
	return &readingService{
		source:    source,
		statsRepo: statsRepo,
		sessions:  sessions,
		now:       time.Now,
	}
}

func (s *readingService) Stats(ctx context.Context, identity string) ([]models.ReadingTime, error) {
	return s.statsRepo.Load(ctx, identity)
}

// Open starts a reading session on the given book, replacing any session the
// identity already had open. The optional startPage is the one-shot
// "continue from page N" hint; it is consumed here and never stored.
func (s *readingService) Open(ctx context.Context, identity string, bookID int64, startPage *int) (session.Session, error) {
	books, err := s.source.Books(ctx)
	if err != nil {
		return session.Session{}, fmt.Errorf("open session: %w", err)
	}

	var book *models.Book
	for i := range books {
		if books[i].ID == bookID {
			book = &books[i]
			break
		}
	}
	if book == nil {
		return session.Session{}, ErrBookNotFound
	}
	book.StartPage = startPage

	st, err := s.statsRepo.Load(ctx, identity)
	if err != nil {
		return session.Session{}, fmt.Errorf("open session: %w", err)
	}

	sess := session.Start(*book, st, s.now())
	if err := s.sessions.Put(ctx, identity, sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// Turn accumulates the elapsed interval against the page that was on display,
// persists the updated collection, then advances the session.
func (s *readingService) Turn(ctx context.Context, identity string, dir session.Direction) (session.Session, error) {
	sess, err := s.sessions.Get(ctx, identity)
	if err != nil {
		return session.Session{}, err
	}
	if sess == nil {
		return session.Session{}, ErrNoSession
	}

	next, obs, err := session.Turn(*sess, dir, s.now())
	if err != nil {
		return session.Session{}, err
	}

	if err := s.record(ctx, identity, *sess, obs, false); err != nil {
		return session.Session{}, err
	}
	if err := s.sessions.Put(ctx, identity, next); err != nil {
		return session.Session{}, err
	}
	return next, nil
}

// Close finalizes the open session: the current page gets the last elapsed
// interval, the book's last-read timestamp is stamped, and the session is
// cleared.
func (s *readingService) Close(ctx context.Context, identity string) error {
	sess, err := s.sessions.Get(ctx, identity)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrNoSession
	}

	obs := session.Close(*sess, s.now())
	if err := s.record(ctx, identity, *sess, obs, true); err != nil {
		return err
	}
	return s.sessions.Clear(ctx, identity)
}

func (s *readingService) record(ctx context.Context, identity string, sess session.Session, obs session.Observation, closed bool) error {
	st, err := s.statsRepo.Load(ctx, identity)
	if err != nil {
		return fmt.Errorf("record reading time: %w", err)
	}

	book := models.Book{ID: sess.BookID, Title: sess.Title}
	st = stats.Accumulate(st, book, obs.ElapsedMs, obs.Page)
	if closed {
		st = stats.Touch(st, book, s.now())
	}

	if err := s.statsRepo.Save(ctx, identity, st); err != nil {
		return fmt.Errorf("record reading time: %w", err)
	}
	return nil
}
