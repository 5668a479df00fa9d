package kickbase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

const (
	overviewPathFmt  = "/v4/leagues/%s/overview?includeManagersAndBattles=true"
	dashboardPathFmt = "/v4/leagues/%s/managers/%s/dashboard"
	squadPathFmt     = "/v4/leagues/%s/managers/%s/squad"
)

// Managers devuelve todos los managers de la liga.
func (c *Client) Managers(ctx context.Context, leagueID string) ([]domain.Manager, error) {
	url := c.base + fmt.Sprintf(overviewPathFmt, leagueID)

	var resp overviewResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, domain.NewFetchError("league", leagueID, err)
	}

	managers := make([]domain.Manager, 0, len(resp.Users))
	for _, u := range resp.Users {
		managers = append(managers, domain.Manager{
			ID:   u.ID.String(),
			Name: u.Name,
		})
	}

	slog.Debug("fetched league managers", "league", leagueID, "count", len(managers))
	return managers, nil
}

// ManagerStats devuelve las métricas de dashboard de un manager.
func (c *Client) ManagerStats(ctx context.Context, leagueID, managerID string) (domain.ManagerStats, error) {
	url := c.base + fmt.Sprintf(dashboardPathFmt, leagueID, managerID)

	var resp dashboardResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return domain.ManagerStats{}, domain.NewFetchError("manager", managerID, err)
	}

	return domain.ManagerStats{
		TeamValue:    resp.TeamValue,
		TotalPoints:  resp.TotalPoints,
		Placement:    resp.Placement,
		MatchdayWins: resp.MatchdayWins,
	}, nil
}

// Squad devuelve la plantilla actual de un manager.
func (c *Client) Squad(ctx context.Context, leagueID, managerID string) ([]domain.SquadPlayer, error) {
	url := c.base + fmt.Sprintf(squadPathFmt, leagueID, managerID)

	var resp squadResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, domain.NewFetchError("squad", managerID, err)
	}

	squad := make([]domain.SquadPlayer, 0, len(resp.Items))
	for _, it := range resp.Items {
		squad = append(squad, domain.SquadPlayer{
			Name:        it.Name,
			MarketValue: it.MarketValue,
		})
	}
	return squad, nil
}
