package kickbase

import (
	"time"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

// epoch es la referencia de los timestamps día-entero del API: el campo
// dt de la serie de valores de mercado son días desde 1970-01-01.
var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// dayToDate convierte un día-entero del API a la fecha de calendario
// correspondiente (medianoche UTC).
func dayToDate(day int64) time.Time {
	return epoch.AddDate(0, 0, int(day))
}

// mapFeedItems convierte los eventos raw del feed a domain.FeedEvent.
// Los items con fecha imparseable se descartan con el resto del mapping
// intacto — el dedup downstream es por ID, no por posición.
func mapFeedItems(raw []feedItem) []domain.FeedEvent {
	events := make([]domain.FeedEvent, 0, len(raw))
	for _, r := range raw {
		date, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			continue
		}
		events = append(events, domain.FeedEvent{
			ID:   r.ID.String(),
			Date: date.UTC(),
			Type: r.Type,
			Meta: domain.FeedMeta{
				SellerName: r.Data.Seller,
				BuyerName:  r.Data.Buyer,
				PlayerID:   r.Data.PlayerID.String(),
				TeamID:     r.Data.TeamID.String(),
				Price:      r.Data.Price,
			},
		})
	}
	return events
}

// mapMarketValues convierte la serie raw a domain.MarketHistory.
func mapMarketValues(raw []marketValueItem) domain.MarketHistory {
	history := make(domain.MarketHistory, 0, len(raw))
	for _, r := range raw {
		history = append(history, domain.MarketValue{
			Date:  dayToDate(r.Day),
			Value: r.Value,
		})
	}
	return history
}

// mapLeagues convierte las ligas del login a domain.League.
func mapLeagues(raw []leagueItem) []domain.League {
	leagues := make([]domain.League, 0, len(raw))
	for _, r := range raw {
		start, _ := time.Parse(time.RFC3339, r.Creation)
		leagues = append(leagues, domain.League{
			ID:    r.ID.String(),
			Name:  r.Name,
			Start: start.UTC(),
		})
	}
	return leagues
}
