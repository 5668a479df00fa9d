package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/kickledger/internal/domain"
	"github.com/alejandrodnm/kickledger/internal/ports"
)

// MatchTurnovers empareja compras y ventas del mismo jugador en pares
// (compra, venta) sobre la secuencia ordenada por fecha.
//
// Pasada 1: para cada compra, escaneo hacia adelante buscando la primera
// venta posterior del mismo jugador que siga libre. Cada record participa
// en a lo sumo un par; con varias compras y ventas del mismo jugador el
// emparejamiento resulta FIFO. Cuadrático en el peor caso — a escala de
// feed de liga (cientos de transferencias por temporada) da igual.
//
// Pasada 2: cada venta que quedó sin compra corresponde a un jugador
// asignado al inicio de temporada. Se fabrica una compra sintética con
// precio 0 y fecha leagueStart. El valor de mercado del jugador al inicio
// de la liga se consulta y se deja en el log; el precio sintético sigue
// siendo 0 de todos modos, igual que siempre se comportó el cálculo (si
// las plantillas iniciales deberían valorarse es una discusión abierta,
// no la resolvemos acá en silencio).
//
// El resultado concatena los pares de la pasada 1 (en orden de compra) y
// los sintéticos de la pasada 2 (en orden de sus ventas).
func MatchTurnovers(ctx context.Context, records []domain.TransferRecord, leagueStart time.Time, players ports.PlayerProvider) ([]domain.Turnover, error) {
	var turnovers []domain.Turnover
	usedSell := make(map[int]bool)

	for i, buy := range records {
		if buy.Kind != domain.KindBuy {
			continue
		}
		for j := i + 1; j < len(records); j++ {
			sell := records[j]
			if sell.Kind != domain.KindSell || usedSell[j] {
				continue
			}
			if sell.PlayerID == buy.PlayerID {
				usedSell[j] = true
				turnovers = append(turnovers, domain.Turnover{Buy: buy, Sell: sell})
				break
			}
		}
	}

	for j, sell := range records {
		if sell.Kind != domain.KindSell || usedSell[j] {
			continue
		}

		history, err := players.MarketHistory(ctx, sell.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("pipeline.MatchTurnovers: %w", err)
		}
		if v, ok := history.ValueOn(leagueStart); ok {
			slog.Debug("starter player sold",
				"player", sell.PlayerName(),
				"manager", sell.Manager,
				"value_at_start", v,
			)
		}

		turnovers = append(turnovers, domain.Turnover{
			Buy: domain.TransferRecord{
				Date:         leagueStart,
				Kind:         domain.KindAssignedAtStart,
				Manager:      sell.Manager,
				Counterparty: domain.PlatformName,
				Price:        0,
				PlayerID:     sell.PlayerID,
				TeamID:       sell.TeamID,
				FirstName:    sell.FirstName,
				LastName:     sell.LastName,
			},
			Sell: sell,
		})
	}

	return turnovers, nil
}
