package pipeline

import (
	"github.com/alejandrodnm/kickledger/internal/domain"
)

// playerDiff es el resultado realizado de un turnover, atribuido al
// manager que compró (y luego vendió) al jugador.
type playerDiff struct {
	player string
	diff   int64
}

// RecordsByManager agrupa los records en los que cada manager es la parte
// que paga: sus propias compras, más las ventas de otros managers en las
// que él figura como contraparte compradora. Managers sin actividad
// quedan con lista vacía — igual reciben fila de resumen.
func RecordsByManager(records []domain.TransferRecord, managers []string) map[string][]domain.TransferRecord {
	byManager := make(map[string][]domain.TransferRecord, len(managers))
	for _, name := range managers {
		byManager[name] = nil
	}

	for _, rec := range records {
		switch rec.Kind {
		case domain.KindBuy:
			if _, ok := byManager[rec.Manager]; ok {
				byManager[rec.Manager] = append(byManager[rec.Manager], rec)
			}
		case domain.KindSell:
			if _, ok := byManager[rec.Counterparty]; ok {
				byManager[rec.Counterparty] = append(byManager[rec.Counterparty], rec)
			}
		}
	}

	return byManager
}

// Summarize reduce el set de turnovers y los records por manager a un
// ManagerSummary por manager. Reducción pura sobre enteros: mismo input,
// mismo output, sin estado mutable de por medio.
//
// Los turnovers cuya compra es una asignación gratuita de la plataforma
// (precio 0) no entran en los extremos de ganancia/pérdida — no hubo
// compra real que comparar — pero sí cuentan como parte del ledger.
func Summarize(turnovers []domain.Turnover, perManager map[string][]domain.TransferRecord) map[string]domain.ManagerSummary {
	diffs := make(map[string][]playerDiff)
	for _, t := range turnovers {
		if t.IsStarterAssignment() {
			continue
		}
		diffs[t.Buy.Manager] = append(diffs[t.Buy.Manager], playerDiff{
			player: t.Buy.LastName,
			diff:   t.Diff(),
		})
	}

	summaries := make(map[string]domain.ManagerSummary, len(perManager))
	for name, records := range perManager {
		s := domain.ManagerSummary{
			Manager:              name,
			BiggestOverpayPlayer: domain.UnknownPlayer,
		}

		// Mayor overpay: precio pagado menos valor de mercado, empates
		// resueltos por primera aparición (comparación estricta).
		first := true
		for _, rec := range records {
			if first || rec.Overpay() > s.BiggestOverpay {
				s.BiggestOverpay = rec.Overpay()
				s.BiggestOverpayPlayer = rec.LastName
				first = false
			}
		}

		s.BiggestWin, s.BiggestWinPlayer = extremeDiff(diffs[name], func(d, best int64) bool { return d > best })
		s.BiggestLoss, s.BiggestLossPlayer = extremeDiff(diffs[name], func(d, best int64) bool { return d < best })

		summaries[name] = s
	}

	return summaries
}

// extremeDiff devuelve el diff extremo según better y el jugador asociado.
// Sin turnovers devuelve 0 / "Unknown".
func extremeDiff(ds []playerDiff, better func(d, best int64) bool) (int64, string) {
	if len(ds) == 0 {
		return 0, domain.UnknownPlayer
	}
	best := ds[0]
	for _, d := range ds[1:] {
		if better(d.diff, best.diff) {
			best = d
		}
	}
	return best.diff, best.player
}
