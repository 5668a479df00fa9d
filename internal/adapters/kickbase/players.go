package kickbase

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

const (
	// competitionID 1 es la Bundesliga; es la única competición que usamos.
	competitionID = 1

	playerPathFmt      = "/v4/competitions/%d/players/%s?leagueId=%s"
	marketValuePathFmt = "/v4/competitions/%d/players/%s/marketValue/365"
)

// LookupPlayer devuelve nombre y apellido de un jugador.
func (c *Client) LookupPlayer(ctx context.Context, leagueID, playerID string) (domain.PlayerInfo, error) {
	url := c.base + fmt.Sprintf(playerPathFmt, competitionID, playerID, leagueID)

	var resp playerResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return domain.PlayerInfo{}, domain.NewFetchError("player", playerID, err)
	}

	return domain.PlayerInfo{
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
	}, nil
}

// MarketHistory devuelve la serie de valor de mercado de los últimos 365
// días del jugador. El API la entrega sin orden garantizado y con fechas
// como día-entero desde epoch; mapping.go las convierte a calendario.
func (c *Client) MarketHistory(ctx context.Context, playerID string) (domain.MarketHistory, error) {
	url := c.base + fmt.Sprintf(marketValuePathFmt, competitionID, playerID)

	var resp marketValueResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, domain.NewFetchError("marketvalue", playerID, err)
	}

	return mapMarketValues(resp.Items), nil
}
