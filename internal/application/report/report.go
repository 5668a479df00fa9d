package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/kickledger/internal/domain"
	"github.com/alejandrodnm/kickledger/internal/ports"
)

// halfMillionCap es el techo de valor de mercado para contar como
// "jugador de 500k" en el overview.
const halfMillionCap = 500_000

// Row es una fila del overview de liga: stats de dashboard del manager,
// su plantilla resumida y sus extremos de trading.
type Row struct {
	Manager     string
	Stats       domain.ManagerStats
	BigBoy      string // jugador con mayor valor de mercado de la plantilla
	BigBoyValue int64
	HalfMillion int // jugadores con valor <= 500k
	Summary     domain.ManagerSummary
}

// Builder arma el overview de liga consultando dashboard y plantilla de
// cada manager. Secuencial y pacedo por el rate limiter del provider,
// igual que el resto de llamadas al upstream.
type Builder struct {
	league   ports.LeagueProvider
	leagueID string
}

// NewBuilder crea un Builder para la liga dada.
func NewBuilder(league ports.LeagueProvider, leagueID string) *Builder {
	return &Builder{league: league, leagueID: leagueID}
}

// Build devuelve una fila por manager, en el orden recibido. Los managers
// sin resumen (sin actividad de transferencias) llevan el zero value.
func (b *Builder) Build(ctx context.Context, managers []domain.Manager, summaries map[string]domain.ManagerSummary) ([]Row, error) {
	rows := make([]Row, 0, len(managers))

	for _, m := range managers {
		stats, err := b.league.ManagerStats(ctx, b.leagueID, m.ID)
		if err != nil {
			return nil, fmt.Errorf("report.Build: %w", err)
		}
		squad, err := b.league.Squad(ctx, b.leagueID, m.ID)
		if err != nil {
			return nil, fmt.Errorf("report.Build: %w", err)
		}

		row := Row{
			Manager: m.Name,
			Stats:   stats,
			Summary: summaries[m.Name],
		}
		for _, p := range squad {
			if p.MarketValue > row.BigBoyValue {
				row.BigBoy = p.Name
				row.BigBoyValue = p.MarketValue
			}
			if p.MarketValue <= halfMillionCap {
				row.HalfMillion++
			}
		}

		slog.Debug("overview row built", "manager", m.Name, "squad", len(squad))
		rows = append(rows, row)
	}

	return rows, nil
}
