package pipeline

import (
	"testing"
	"time"

	"github.com/alejandrodnm/kickledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, time.August, d, 12, 0, 0, 0, time.UTC)
}

func transferEvent(id string, date time.Time) domain.FeedEvent {
	return domain.FeedEvent{
		ID:   id,
		Date: date,
		Type: domain.EventTypeTransfer,
		Meta: domain.FeedMeta{PlayerID: "p-" + id, Price: 100},
	}
}

func TestMergeLedger_DedupsById(t *testing.T) {
	persisted := []domain.FeedEvent{
		transferEvent("1", day(1)),
		transferEvent("2", day(2)),
	}
	fresh := []domain.FeedEvent{
		transferEvent("2", day(2)), // duplicado
		transferEvent("3", day(3)),
	}

	merged := MergeLedger(persisted, fresh)

	require.Len(t, merged, 3)
	seen := map[string]bool{}
	for _, ev := range merged {
		assert.False(t, seen[ev.ID], "ID duplicado: %s", ev.ID)
		seen[ev.ID] = true
	}
}

func TestMergeLedger_Idempotent(t *testing.T) {
	batch := []domain.FeedEvent{
		transferEvent("a", day(5)),
		transferEvent("b", day(3)),
		transferEvent("c", day(8)),
	}

	once := MergeLedger(nil, batch)
	twice := MergeLedger(once, batch)

	assert.Equal(t, once, twice)
}

func TestMergeLedger_SortsByDate(t *testing.T) {
	// Batch pre-mezclado: el feed no garantiza orden
	fresh := []domain.FeedEvent{
		transferEvent("x", day(20)),
		transferEvent("y", day(2)),
		transferEvent("z", day(11)),
		transferEvent("w", day(7)),
	}

	merged := MergeLedger(nil, fresh)

	require.Len(t, merged, 4)
	for i := 1; i < len(merged); i++ {
		assert.False(t, merged[i].Date.Before(merged[i-1].Date),
			"orden no ascendente en posición %d", i)
	}
}

func TestMergeLedger_StableOnDateTies(t *testing.T) {
	same := day(10)
	fresh := []domain.FeedEvent{
		transferEvent("first", same),
		transferEvent("second", same),
		transferEvent("third", same),
	}

	merged := MergeLedger(nil, fresh)

	require.Len(t, merged, 3)
	assert.Equal(t, "first", merged[0].ID)
	assert.Equal(t, "second", merged[1].ID)
	assert.Equal(t, "third", merged[2].ID)
}

func TestMergeLedger_FiltersNonTransferEvents(t *testing.T) {
	fresh := []domain.FeedEvent{
		transferEvent("keep", day(1)),
		{ID: "drop", Date: day(2), Type: 3}, // logro, no transferencia
		{ID: "drop2", Date: day(3), Type: 0},
	}

	merged := MergeLedger(nil, fresh)

	require.Len(t, merged, 1)
	assert.Equal(t, "keep", merged[0].ID)
}

func TestMergeLedger_PersistedWinsOverFresh(t *testing.T) {
	persisted := []domain.FeedEvent{
		{ID: "1", Date: day(1), Type: domain.EventTypeTransfer, Meta: domain.FeedMeta{Price: 100}},
	}
	fresh := []domain.FeedEvent{
		{ID: "1", Date: day(1), Type: domain.EventTypeTransfer, Meta: domain.FeedMeta{Price: 999}},
	}

	merged := MergeLedger(persisted, fresh)

	require.Len(t, merged, 1)
	assert.Equal(t, int64(100), merged[0].Meta.Price)
}
