package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callguard/spam-checker/internal/domain"
	"github.com/callguard/spam-checker/internal/platform/storage/memory"
)

func TestPutGetOverwrite(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	missing, err := store.Get(ctx, "spam_check_00000000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	first := domain.NewLookupResult("+12345678901", 0, "Acme", "US", "mobile")
	require.NoError(t, store.Put(ctx, first))

	got, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	// Overwrite under the same id keeps a single entry.
	second := domain.NewLookupResult("+12345678901", 1, "Acme", "US", "mobile")
	require.NoError(t, store.Put(ctx, second))

	got, err = store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.SpamScore)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	numbers := []string{"+12345678901", "+12025550143", "+447700900123"}
	for i, n := range numbers {
		require.NoError(t, store.Put(ctx, domain.NewLookupResult(n, i%2, "", "", "")))
	}

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, n := range numbers {
		assert.Equal(t, domain.DocumentID(n), all[i].ID)
	}
}

func TestHistoryRingBuffer(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	for i := 0; i < 150; i++ {
		entry := domain.NewHistoryEntry(fmt.Sprintf("+1202555%04d", i), fmt.Sprintf("id-%d", i), 0)
		require.NoError(t, store.AppendHistory(ctx, entry))
	}

	// Capacity is 100; asking for everything returns only the newest 100.
	all, err := store.RecentHistory(ctx, 1000)
	require.NoError(t, err)
	require.Len(t, all, 100)
	assert.Equal(t, "id-50", all[0].ResultID, "oldest surviving entry")
	assert.Equal(t, "id-149", all[99].ResultID, "newest entry last")

	recent, err := store.RecentHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, "id-140", recent[0].ResultID)
	assert.Equal(t, "id-149", recent[9].ResultID)
}

func TestRecentHistoryEmpty(t *testing.T) {
	store := memory.NewStore()

	recent, err := store.RecentHistory(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
