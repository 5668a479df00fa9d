package storage

import (
	"context"
	"sync"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

// MemoryRepository implementa ports.Repository en memoria. Pensado para
// tests y corridas descartables; no sobrevive al proceso.
type MemoryRepository struct {
	mu       sync.Mutex
	ledgers  map[string][]domain.FeedEvent
	records  map[string][]domain.TransferRecord
	consumed map[string]int
	results  map[string]*domain.Result
}

// NewMemoryRepository crea un repositorio vacío.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		ledgers:  make(map[string][]domain.FeedEvent),
		records:  make(map[string][]domain.TransferRecord),
		consumed: make(map[string]int),
		results:  make(map[string]*domain.Result),
	}
}

// LoadLedger devuelve el ledger de la liga, vacío si no hay.
func (m *MemoryRepository) LoadLedger(_ context.Context, leagueID string) ([]domain.FeedEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.FeedEvent(nil), m.ledgers[leagueID]...), nil
}

// SaveLedger reemplaza el ledger de la liga.
func (m *MemoryRepository) SaveLedger(_ context.Context, leagueID string, events []domain.FeedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledgers[leagueID] = append([]domain.FeedEvent(nil), events...)
	return nil
}

// LoadRecords devuelve los records cacheados y el marcador de completitud.
func (m *MemoryRepository) LoadRecords(_ context.Context, leagueID string) ([]domain.TransferRecord, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.TransferRecord(nil), m.records[leagueID]...), m.consumed[leagueID], nil
}

// AppendRecord agrega un record al cache de la liga.
func (m *MemoryRepository) AppendRecord(_ context.Context, leagueID string, rec domain.TransferRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[leagueID] = append(m.records[leagueID], rec)
	return nil
}

// MarkConsumed fija el marcador de completitud de la liga.
func (m *MemoryRepository) MarkConsumed(_ context.Context, leagueID string, consumed int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consumed[leagueID] = consumed
	return nil
}

// LoadResult devuelve el resultado cacheado o nil.
func (m *MemoryRepository) LoadResult(_ context.Context, leagueID string) (*domain.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if res, ok := m.results[leagueID]; ok {
		cp := *res
		return &cp, nil
	}
	return nil, nil
}

// SaveResult reemplaza el resultado cacheado.
func (m *MemoryRepository) SaveResult(_ context.Context, leagueID string, res domain.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[leagueID] = &res
	return nil
}

// Close no hace nada en el backend de memoria.
func (m *MemoryRepository) Close() error {
	return nil
}
