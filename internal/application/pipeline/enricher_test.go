package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alejandrodnm/kickledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream exploded")

// stubPlayers implementa ports.PlayerProvider para tests, con contadores
// de llamadas para verificar el cacheo del enriquecimiento.
type stubPlayers struct {
	infos     map[string]domain.PlayerInfo
	histories map[string]domain.MarketHistory

	failLookup  string // playerID cuyo LookupPlayer falla
	failHistory string // playerID cuyo MarketHistory falla

	lookupCalls  int
	historyCalls int
}

func (s *stubPlayers) LookupPlayer(_ context.Context, _, playerID string) (domain.PlayerInfo, error) {
	s.lookupCalls++
	if playerID == s.failLookup {
		return domain.PlayerInfo{}, domain.NewFetchError("player", playerID, errUpstream)
	}
	return s.infos[playerID], nil
}

func (s *stubPlayers) MarketHistory(_ context.Context, playerID string) (domain.MarketHistory, error) {
	s.historyCalls++
	if playerID == s.failHistory {
		return nil, domain.NewFetchError("marketvalue", playerID, errUpstream)
	}
	return s.histories[playerID], nil
}

func newStubPlayers() *stubPlayers {
	return &stubPlayers{
		infos:     map[string]domain.PlayerInfo{},
		histories: map[string]domain.MarketHistory{},
	}
}

func sellEvent(id, seller, buyer, playerID string, date time.Time, price int64) domain.FeedEvent {
	return domain.FeedEvent{
		ID:   id,
		Date: date,
		Type: domain.EventTypeTransfer,
		Meta: domain.FeedMeta{
			SellerName: seller,
			BuyerName:  buyer,
			PlayerID:   playerID,
			TeamID:     "t1",
			Price:      price,
		},
	}
}

func TestEnrich_ClassifiesKinds(t *testing.T) {
	cases := []struct {
		name         string
		seller       string
		buyer        string
		wantKind     domain.TransferKind
		wantManager  string
		wantPartner  string
	}{
		{"venta entre managers", "Alex", "Bruno", domain.KindSell, "Alex", "Bruno"},
		{"venta a la plataforma", "Alex", "", domain.KindSell, "Alex", domain.PlatformName},
		{"compra a la plataforma", "", "Bruno", domain.KindBuy, "Bruno", domain.PlatformName},
		{"sin partes", "", "", domain.KindUnknown, "", ""},
	}

	players := newStubPlayers()
	players.infos["p1"] = domain.PlayerInfo{FirstName: "Thomas", LastName: "Müller"}
	e := NewEnricher(players, "league-1")

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := sellEvent("e1", tc.seller, tc.buyer, "p1", day(10), 5_000_000)
			rec, err := e.Enrich(context.Background(), ev)
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, rec.Kind)
			assert.Equal(t, tc.wantManager, rec.Manager)
			assert.Equal(t, tc.wantPartner, rec.Counterparty)
			assert.Equal(t, "Müller", rec.LastName)
			assert.True(t, rec.Enriched)
		})
	}
}

func TestEnrich_MarketPriceOnExactDate(t *testing.T) {
	players := newStubPlayers()
	players.histories["p1"] = domain.MarketHistory{
		{Date: day(9), Value: 4_800_000},
		{Date: day(10), Value: 5_100_000},
		{Date: day(11), Value: 5_300_000},
	}
	e := NewEnricher(players, "league-1")

	rec, err := e.Enrich(context.Background(), sellEvent("e1", "Alex", "", "p1", day(10), 5_000_000))

	require.NoError(t, err)
	assert.Equal(t, int64(5_100_000), rec.MarketPrice)
}

func TestEnrich_MarketPriceFallsBackToYesterday(t *testing.T) {
	now := time.Date(2025, time.September, 1, 9, 30, 0, 0, time.UTC)

	players := newStubPlayers()
	players.histories["p1"] = domain.MarketHistory{
		// Nada en la fecha del trade; sí hay valor "ayer" (31 de agosto)
		{Date: time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC), Value: 7_000_000},
	}
	e := NewEnricher(players, "league-1")
	e.now = func() time.Time { return now }

	rec, err := e.Enrich(context.Background(), sellEvent("e1", "Alex", "", "p1", day(10), 5_000_000))

	require.NoError(t, err)
	assert.Equal(t, int64(7_000_000), rec.MarketPrice)
}

func TestEnrich_NoMarketValueYieldsZero(t *testing.T) {
	players := newStubPlayers()
	players.histories["p1"] = domain.MarketHistory{
		{Date: day(1), Value: 3_000_000}, // ni fecha exacta ni ayer
	}
	e := NewEnricher(players, "league-1")
	e.now = func() time.Time { return day(25) }

	rec, err := e.Enrich(context.Background(), sellEvent("e1", "Alex", "", "p1", day(10), 5_000_000))

	// Condición de calidad de datos, no un fallo
	require.NoError(t, err)
	assert.Zero(t, rec.MarketPrice)
	assert.True(t, rec.Enriched)
}

func TestEnrich_LookupFailurePropagatesAsFetchError(t *testing.T) {
	players := newStubPlayers()
	players.failLookup = "p1"
	e := NewEnricher(players, "league-1")

	_, err := e.Enrich(context.Background(), sellEvent("e1", "Alex", "", "p1", day(10), 100))

	require.Error(t, err)
	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "player", fetchErr.Resource)
	assert.Equal(t, "p1", fetchErr.ID)
}

func TestEnrich_HistoryFailurePropagatesAsFetchError(t *testing.T) {
	players := newStubPlayers()
	players.failHistory = "p1"
	e := NewEnricher(players, "league-1")

	_, err := e.Enrich(context.Background(), sellEvent("e1", "Alex", "", "p1", day(10), 100))

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "marketvalue", fetchErr.Resource)
}
