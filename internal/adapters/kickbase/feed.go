package kickbase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/kickledger/internal/domain"
	"github.com/alejandrodnm/kickledger/internal/ports"
)

const feedPathFmt = "/v4/leagues/%s/activitiesFeed/?max=%d&start=%d"

// FetchTransferPage devuelve una página del feed de actividades de la
// liga. Devuelve todos los tipos de evento; el filtrado a transferencias
// es responsabilidad del core. HasMore=false cuando la página llega vacía.
func (c *Client) FetchTransferPage(ctx context.Context, leagueID string, offset int) (ports.FeedPage, error) {
	url := c.base + fmt.Sprintf(feedPathFmt, leagueID, c.pageSize, offset)

	var resp feedResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return ports.FeedPage{}, domain.NewFetchError("feed", fmt.Sprintf("%s@%d", leagueID, offset), err)
	}

	events := mapFeedItems(resp.Items)

	slog.Debug("fetched feed page",
		"league", leagueID,
		"offset", offset,
		"items", len(resp.Items),
		"mapped", len(events),
	)

	return ports.FeedPage{
		Events:  events,
		HasMore: len(resp.Items) > 0,
	}, nil
}
