package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/credcheck/internal/domain/analysis"
	"github.com/bryanwahyu/credcheck/internal/domain/history"
)

func newRecord(i int) *history.Record {
	content := fmt.Sprintf("story number %d", i)
	id := analysis.ResultID(fmt.Sprintf("id-%d", i))
	return history.NewRecord(analysis.Analyze(content, analysis.ContentText, id, time.Unix(int64(i), 0)))
}

func TestStore_SaveAppendsToEnd(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for i := 0; i < 4; i++ {
		rec := newRecord(i)
		require.NoError(t, s.Save(ctx, rec))

		all, err := s.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, i+1)
		assert.Same(t, rec, all[len(all)-1])
	}
}

func TestStore_RecentReturnsFirstInserted(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Save(ctx, newRecord(i)))
	}

	recent, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, analysis.ResultID("id-0"), recent[0].ID)
	assert.Equal(t, analysis.ResultID("id-1"), recent[1].ID)
	assert.Equal(t, analysis.ResultID("id-2"), recent[2].ID)
}

func TestStore_RecentFewerThanN(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Save(ctx, newRecord(0)))

	recent, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	recent, err = s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestStore_EmptyListsAreNotNil(t *testing.T) {
	s := NewStore()
	all, err := s.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestStore_ReturnedSliceIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Save(ctx, newRecord(0)))

	all, _ := s.All(ctx)
	all[0] = nil

	again, _ := s.All(ctx)
	assert.NotNil(t, again[0])
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	rec := newRecord(7)
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "id-7")
	require.NoError(t, err)
	assert.Same(t, rec, got)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestStore_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Save(ctx, newRecord(i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, s.Len())
}
