package ports

import (
	"context"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

// LeagueProvider expone los datos de liga que no son el feed: managers,
// stats de dashboard y plantillas.
type LeagueProvider interface {
	// Managers devuelve todos los managers de la liga.
	Managers(ctx context.Context, leagueID string) ([]domain.Manager, error)

	// ManagerStats devuelve las métricas de dashboard de un manager.
	ManagerStats(ctx context.Context, leagueID, managerID string) (domain.ManagerStats, error)

	// Squad devuelve la plantilla actual de un manager.
	Squad(ctx context.Context, leagueID, managerID string) ([]domain.SquadPlayer, error)
}
