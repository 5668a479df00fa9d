package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/kickledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, kind domain.TransferKind, manager, playerID string, date time.Time, price int64) domain.TransferRecord {
	return domain.TransferRecord{
		EventID:      id,
		Date:         date,
		Kind:         kind,
		Manager:      manager,
		Counterparty: domain.PlatformName,
		PlayerID:     playerID,
		Price:        price,
		LastName:     "Müller",
		Enriched:     true,
	}
}

func TestMatchTurnovers_PairsBuyWithNextSell(t *testing.T) {
	records := []domain.TransferRecord{
		record("e1", domain.KindBuy, "Alex", "p1", day(1), 100),
		record("e2", domain.KindSell, "Alex", "p1", day(5), 150),
	}

	turnovers, err := MatchTurnovers(context.Background(), records, day(0), newStubPlayers())

	require.NoError(t, err)
	require.Len(t, turnovers, 1)
	assert.Equal(t, "e1", turnovers[0].Buy.EventID)
	assert.Equal(t, "e2", turnovers[0].Sell.EventID)
	assert.Equal(t, int64(50), turnovers[0].Diff())
}

func TestMatchTurnovers_FIFOOnRepeatedPlayer(t *testing.T) {
	// Mismo jugador comprado y vendido dos veces: la primera compra se
	// empareja con la primera venta, la segunda con la segunda.
	records := []domain.TransferRecord{
		record("buy1", domain.KindBuy, "Alex", "p1", day(1), 100),
		record("sell1", domain.KindSell, "Alex", "p1", day(2), 120),
		record("buy2", domain.KindBuy, "Alex", "p1", day(3), 130),
		record("sell2", domain.KindSell, "Alex", "p1", day(4), 160),
	}

	turnovers, err := MatchTurnovers(context.Background(), records, day(0), newStubPlayers())

	require.NoError(t, err)
	require.Len(t, turnovers, 2)
	assert.Equal(t, "buy1", turnovers[0].Buy.EventID)
	assert.Equal(t, "sell1", turnovers[0].Sell.EventID)
	assert.Equal(t, "buy2", turnovers[1].Buy.EventID)
	assert.Equal(t, "sell2", turnovers[1].Sell.EventID)
}

func TestMatchTurnovers_EachRecordAtMostOnce(t *testing.T) {
	// Una sola venta no puede cerrar dos compras.
	records := []domain.TransferRecord{
		record("buy1", domain.KindBuy, "Alex", "p1", day(1), 100),
		record("buy2", domain.KindBuy, "Alex", "p1", day(2), 110),
		record("sell1", domain.KindSell, "Alex", "p1", day(3), 150),
	}

	turnovers, err := MatchTurnovers(context.Background(), records, day(0), newStubPlayers())

	require.NoError(t, err)
	require.Len(t, turnovers, 1)
	assert.Equal(t, "buy1", turnovers[0].Buy.EventID)
	assert.Equal(t, "sell1", turnovers[0].Sell.EventID)
}

func TestMatchTurnovers_UnmatchedSellBecomesStarterAssignment(t *testing.T) {
	start := day(0)
	players := newStubPlayers()
	players.histories["p1"] = domain.MarketHistory{{Date: start, Value: 9_000_000}}

	sell := record("sell1", domain.KindSell, "Kim", "p1", day(7), 4_000_000)
	turnovers, err := MatchTurnovers(context.Background(), []domain.TransferRecord{sell}, start, players)

	require.NoError(t, err)
	require.Len(t, turnovers, 1)

	buy := turnovers[0].Buy
	assert.Equal(t, domain.KindAssignedAtStart, buy.Kind)
	assert.True(t, start.Equal(buy.Date))
	assert.Equal(t, "Kim", buy.Manager)
	assert.Equal(t, domain.PlatformName, buy.Counterparty)
	// La compra sintética vale 0 aunque haya valor de mercado al inicio.
	assert.Zero(t, buy.Price)
	assert.Equal(t, "p1", buy.PlayerID)
	assert.True(t, turnovers[0].IsStarterAssignment())
	assert.Equal(t, "sell1", turnovers[0].Sell.EventID)
}

func TestMatchTurnovers_SellBeforeBuyIsNotPaired(t *testing.T) {
	// Venta anterior a la compra del mismo jugador: no forman par, la
	// venta se trata como plantilla inicial y la compra queda abierta.
	records := []domain.TransferRecord{
		record("sell1", domain.KindSell, "Alex", "p1", day(1), 150),
		record("buy1", domain.KindBuy, "Alex", "p1", day(5), 100),
	}

	turnovers, err := MatchTurnovers(context.Background(), records, day(0), newStubPlayers())

	require.NoError(t, err)
	require.Len(t, turnovers, 1)
	assert.Equal(t, domain.KindAssignedAtStart, turnovers[0].Buy.Kind)
	assert.Equal(t, "sell1", turnovers[0].Sell.EventID)
}

func TestMatchTurnovers_SkipsUnknownKind(t *testing.T) {
	records := []domain.TransferRecord{
		record("e1", domain.KindUnknown, "", "p1", day(1), 100),
		record("e2", domain.KindBuy, "Alex", "p2", day(2), 200),
	}

	turnovers, err := MatchTurnovers(context.Background(), records, day(0), newStubPlayers())

	require.NoError(t, err)
	assert.Empty(t, turnovers)
}

func TestMatchTurnovers_HistoryErrorPropagates(t *testing.T) {
	players := newStubPlayers()
	players.failHistory = "p1"

	sell := record("sell1", domain.KindSell, "Kim", "p1", day(7), 100)
	_, err := MatchTurnovers(context.Background(), []domain.TransferRecord{sell}, day(0), players)

	require.Error(t, err)
	var fetchErr *domain.FetchError
	assert.ErrorAs(t, err, &fetchErr)
}
