package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/kickledger/internal/domain"
	"github.com/alejandrodnm/kickledger/internal/ports"
)

// Enricher expande un evento crudo en un TransferRecord normalizado:
// clasifica el tipo de trade, resuelve la identidad del jugador y busca su
// valor de mercado en la fecha del trade. Las llamadas externas van
// pacedas por el rate limiter del provider.
type Enricher struct {
	players  ports.PlayerProvider
	leagueID string

	// now es inyectable para testear el fallback de "ayer".
	now func() time.Time
}

// NewEnricher crea un Enricher para la liga dada.
func NewEnricher(players ports.PlayerProvider, leagueID string) *Enricher {
	return &Enricher{
		players:  players,
		leagueID: leagueID,
		now:      time.Now,
	}
}

// Enrich convierte un evento de transferencia en un TransferRecord
// completo. Cualquier fallo de lookup se propaga como *domain.FetchError:
// un ledger enriquecido a medias no sirve para emparejar.
func (e *Enricher) Enrich(ctx context.Context, ev domain.FeedEvent) (domain.TransferRecord, error) {
	kind, manager, counterparty := ev.Meta.Classify()

	rec := domain.TransferRecord{
		EventID:      ev.ID,
		Date:         ev.Date,
		Kind:         kind,
		Manager:      manager,
		Counterparty: counterparty,
		Price:        ev.Meta.Price,
		PlayerID:     ev.Meta.PlayerID,
		TeamID:       ev.Meta.TeamID,
	}

	info, err := e.players.LookupPlayer(ctx, e.leagueID, ev.Meta.PlayerID)
	if err != nil {
		return domain.TransferRecord{}, fmt.Errorf("pipeline.Enrich: %w", err)
	}
	rec.FirstName = info.FirstName
	rec.LastName = info.LastName

	price, err := e.marketPriceOn(ctx, ev.Meta.PlayerID, ev.Date)
	if err != nil {
		return domain.TransferRecord{}, fmt.Errorf("pipeline.Enrich: %w", err)
	}
	rec.MarketPrice = price
	rec.Enriched = true

	return rec, nil
}

// marketPriceOn devuelve el valor de mercado del jugador en la fecha dada.
// Si no hay valor exactamente en esa fecha cae al valor de "ayer" relativo
// al momento de procesamiento.
//
// El fallback replica el comportamiento observado del sistema original y
// probablemente tape un desfase de alineación de fechas en el upstream
// (timezone o conversión día-entero corrida en uno). Hasta revalidarlo
// contra el API preservamos el efecto observable tal cual.
func (e *Enricher) marketPriceOn(ctx context.Context, playerID string, date time.Time) (int64, error) {
	history, err := e.players.MarketHistory(ctx, playerID)
	if err != nil {
		return 0, err
	}

	if v, ok := history.ValueOn(date); ok {
		return v, nil
	}

	yesterday := e.now().UTC().AddDate(0, 0, -1)
	if v, ok := history.ValueOn(yesterday); ok {
		return v, nil
	}

	// Condición de calidad de datos recuperable, no un fallo: el record
	// queda con precio de mercado 0.
	slog.Warn("no market value found for transfer date",
		"player", playerID,
		"date", date.Format("2006-01-02"),
		"points", len(history),
	)
	return 0, nil
}
