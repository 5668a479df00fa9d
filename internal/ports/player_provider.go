package ports

import (
	"context"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

// PlayerProvider resuelve la identidad y el historial de valor de mercado
// de un jugador. Ambas llamadas pueden fallar por jugador de forma
// independiente; el fallo se propaga como *domain.FetchError.
type PlayerProvider interface {
	// LookupPlayer devuelve nombre y apellido del jugador.
	LookupPlayer(ctx context.Context, leagueID, playerID string) (domain.PlayerInfo, error)

	// MarketHistory devuelve la serie de valor de mercado del jugador,
	// sin orden garantizado.
	MarketHistory(ctx context.Context, playerID string) (domain.MarketHistory, error)
}
