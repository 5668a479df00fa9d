package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name        string
		meta        FeedMeta
		wantKind    TransferKind
		wantManager string
		wantPartner string
	}{
		{"ambas partes", FeedMeta{SellerName: "Alex", BuyerName: "Kim"}, KindSell, "Alex", "Kim"},
		{"solo vendedor", FeedMeta{SellerName: "Alex"}, KindSell, "Alex", PlatformName},
		{"solo comprador", FeedMeta{BuyerName: "Kim"}, KindBuy, "Kim", PlatformName},
		{"ninguna", FeedMeta{}, KindUnknown, "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, manager, partner := tc.meta.Classify()
			assert.Equal(t, tc.wantKind, kind)
			assert.Equal(t, tc.wantManager, manager)
			assert.Equal(t, tc.wantPartner, partner)
		})
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, time.August, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.August, 15, 23, 30, 0, 0, time.UTC)
	nextDay := time.Date(2025, time.August, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))

	// La comparación normaliza a UTC antes de mirar el calendario.
	berlin := time.FixedZone("CEST", 2*60*60)
	lateBerlin := time.Date(2025, time.August, 16, 1, 30, 0, 0, berlin) // 15 ago 23:30 UTC
	assert.True(t, SameDay(lateBerlin, evening))
}

func TestMarketHistoryValueOn(t *testing.T) {
	h := MarketHistory{
		{Date: time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC), Value: 5_000_000},
		{Date: time.Date(2025, time.August, 16, 0, 0, 0, 0, time.UTC), Value: 5_200_000},
	}

	v, ok := h.ValueOn(time.Date(2025, time.August, 16, 14, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, int64(5_200_000), v)

	_, ok = h.ValueOn(time.Date(2025, time.August, 17, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestTurnoverDiff(t *testing.T) {
	tn := Turnover{
		Buy:  TransferRecord{Price: 100},
		Sell: TransferRecord{Price: 150},
	}
	assert.Equal(t, int64(50), tn.Diff())
}

func TestTurnoverIsStarterAssignment(t *testing.T) {
	starter := Turnover{
		Buy: TransferRecord{Kind: KindAssignedAtStart, Counterparty: PlatformName, Price: 0},
	}
	assert.True(t, starter.IsStarterAssignment())

	bought := Turnover{
		Buy: TransferRecord{Kind: KindBuy, Counterparty: PlatformName, Price: 100},
	}
	assert.False(t, bought.IsStarterAssignment())
}

func TestOverpay(t *testing.T) {
	rec := TransferRecord{Price: 5_500_000, MarketPrice: 5_000_000}
	assert.Equal(t, int64(500_000), rec.Overpay())
}

func TestPlayerName(t *testing.T) {
	rec := TransferRecord{FirstName: "Thomas", LastName: "Müller"}
	assert.Equal(t, "Thomas Müller", rec.PlayerName())

	assert.Equal(t, "Müller", TransferRecord{LastName: "Müller"}.PlayerName())
}

func TestFetchError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewFetchError("player", "456", cause)

	assert.Contains(t, err.Error(), "player")
	assert.Contains(t, err.Error(), "456")
	assert.ErrorIs(t, err, cause)

	var fetchErr *FetchError
	require.ErrorAs(t, error(err), &fetchErr)
	assert.Equal(t, "player", fetchErr.Resource)
}
