package service

import (
	"context"
	"errors"
	"testing"

	"booktime/internal/models"
	"booktime/internal/repository/stubs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankedMergesStatsIntoUpstreamBooks(t *testing.T) {
	source := &fakeSource{books: []models.Book{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
	}}
	statsRepo := stubs.NewMemoryStats()
	ctx := context.Background()
	require.NoError(t, statsRepo.Save(ctx, "u1", []models.ReadingTime{
		{BookID: 2, Title: "B", TimeSpent: 900, PageStats: []models.PageStat{{Page: 0, Time: 900}}, CurrentPage: 3, LastRead: 200},
	}))

	svc := NewBookService(source, statsRepo)
	ranked, err := svc.Ranked(ctx, "u1")

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, int64(2), ranked[0].ID)
	assert.True(t, ranked[0].IsLastRead)
	assert.Equal(t, 3, ranked[0].CurrentPage)
	assert.Equal(t, int64(900), ranked[0].TimeSpent)
}

func TestRankedIsPerIdentity(t *testing.T) {
	source := &fakeSource{books: []models.Book{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}}
	statsRepo := stubs.NewMemoryStats()
	ctx := context.Background()
	require.NoError(t, statsRepo.Save(ctx, "u1", []models.ReadingTime{
		{BookID: 2, TimeSpent: 10, PageStats: []models.PageStat{{Page: 0, Time: 10}}, LastRead: 99},
	}))

	svc := NewBookService(source, statsRepo)

	ranked, err := svc.Ranked(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ranked[0].ID, "another identity has no history")
	assert.False(t, ranked[0].IsLastRead)
}

func TestRankedPropagatesUpstreamFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}

	svc := NewBookService(source, stubs.NewMemoryStats())
	_, err := svc.Ranked(context.Background(), "u1")

	assert.ErrorContains(t, err, "list books")
}
