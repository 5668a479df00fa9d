package pipeline

import (
	"sort"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

// MergeLedger fusiona los eventos recién bajados con el ledger persistido:
// descarta todo lo que no sea transferencia, deduplica por ID (lo
// persistido gana, lo nuevo se agrega en su orden de fetch) y ordena por
// fecha ascendente. El sort es estable — los empates de timestamp
// conservan el orden de fetch original.
//
// Garantías de salida: ningún par de elementos comparte ID; la secuencia
// es no-decreciente por fecha.
func MergeLedger(persisted, fresh []domain.FeedEvent) []domain.FeedEvent {
	merged := make([]domain.FeedEvent, 0, len(persisted)+len(fresh))
	seen := make(map[string]bool, len(persisted))

	for _, ev := range persisted {
		if !ev.IsTransfer() || seen[ev.ID] {
			continue
		}
		seen[ev.ID] = true
		merged = append(merged, ev)
	}

	for _, ev := range fresh {
		if !ev.IsTransfer() || seen[ev.ID] {
			continue
		}
		seen[ev.ID] = true
		merged = append(merged, ev)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})

	return merged
}
