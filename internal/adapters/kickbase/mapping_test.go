package kickbase

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayToDate(t *testing.T) {
	assert.Equal(t, time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC), dayToDate(0))
	assert.Equal(t, time.Date(1970, time.February, 1, 0, 0, 0, 0, time.UTC), dayToDate(31))
	assert.Equal(t, time.Date(1971, time.January, 1, 0, 0, 0, 0, time.UTC), dayToDate(365))
}

func TestMapFeedItems(t *testing.T) {
	raw := []feedItem{
		{
			ID:   json.Number("123"),
			Date: "2025-08-15T10:30:00Z",
			Type: 15,
			Data: feedData{
				Seller:   "Alex",
				Buyer:    "Kim",
				PlayerID: json.Number("456"),
				TeamID:   json.Number("7"),
				Price:    3_500_000,
			},
		},
	}

	events := mapFeedItems(raw)

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "123", ev.ID)
	assert.Equal(t, time.Date(2025, time.August, 15, 10, 30, 0, 0, time.UTC), ev.Date)
	assert.Equal(t, 15, ev.Type)
	assert.Equal(t, "Alex", ev.Meta.SellerName)
	assert.Equal(t, "Kim", ev.Meta.BuyerName)
	assert.Equal(t, "456", ev.Meta.PlayerID)
	assert.Equal(t, "7", ev.Meta.TeamID)
	assert.Equal(t, int64(3_500_000), ev.Meta.Price)
}

func TestMapFeedItems_DropsUnparseableDates(t *testing.T) {
	raw := []feedItem{
		{ID: json.Number("1"), Date: "not-a-date", Type: 15},
		{ID: json.Number("2"), Date: "2025-08-15T10:30:00Z", Type: 15},
	}

	events := mapFeedItems(raw)

	require.Len(t, events, 1)
	assert.Equal(t, "2", events[0].ID)
}

func TestMapMarketValues(t *testing.T) {
	raw := []marketValueItem{
		{Day: 31, Value: 5_000_000},
		{Day: 32, Value: 5_100_000},
	}

	history := mapMarketValues(raw)

	require.Len(t, history, 2)
	assert.Equal(t, time.Date(1970, time.February, 1, 0, 0, 0, 0, time.UTC), history[0].Date)
	assert.Equal(t, int64(5_000_000), history[0].Value)
	assert.Equal(t, int64(5_100_000), history[1].Value)
}

func TestMapLeagues(t *testing.T) {
	raw := []leagueItem{
		{ID: json.Number("42"), Name: "Mi Liga", Creation: "2025-08-01T12:00:00Z"},
	}

	leagues := mapLeagues(raw)

	require.Len(t, leagues, 1)
	assert.Equal(t, "42", leagues[0].ID)
	assert.Equal(t, "Mi Liga", leagues[0].Name)
	assert.Equal(t, time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC), leagues[0].Start)
}
