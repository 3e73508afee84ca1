package service

import (
	"context"
	"fmt"

	"booktime/internal/catalog"
	"booktime/internal/repository"
	"booktime/internal/stats"
)

// BookService produces the display-ordered book list for one identity:
// upstream collection, enriched with the identity's reading statistics and
// ranked most-recently-read first.
type BookService interface {
	Ranked(ctx context.Context, identity string) ([]stats.RankedBook, error)
}

type bookService struct {
	source    catalog.Source
	statsRepo repository.StatsRepository
}

func NewBookService(source catalog.Source, statsRepo repository.StatsRepository) BookService {
	return &bookService{source: source, statsRepo: statsRepo}
}

func (s *bookService) Ranked(ctx context.Context, identity string) ([]stats.RankedBook, error) {
	books, err := s.source.Books(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	st, err := s.statsRepo.Load(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("load reading stats: %w", err)
	}

	return stats.Rank(books, st), nil
}
