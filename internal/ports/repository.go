package ports

import (
	"context"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

// Repository persiste el estado de cada etapa del pipeline, particionado
// por liga. Tres documentos: ledger crudo, cache de records enriquecidos
// (con marcador de completitud) y resultado final.
//
// Contrato de corrupción: un documento ilegible o corrupto se trata como
// colección vacía (se loguea, nunca es error fatal) — la etapa recalcula
// desde cero. Los errores que sí se devuelven son de I/O real.
type Repository interface {
	// LoadLedger devuelve el ledger crudo persistido, vacío si no existe.
	LoadLedger(ctx context.Context, leagueID string) ([]domain.FeedEvent, error)

	// SaveLedger reemplaza el ledger persistido por el set merged.
	SaveLedger(ctx context.Context, leagueID string, events []domain.FeedEvent) error

	// LoadRecords devuelve los records enriquecidos cacheados y el
	// marcador de completitud: cuántos eventos del ledger consumió la
	// última pasada de enriquecimiento.
	LoadRecords(ctx context.Context, leagueID string) ([]domain.TransferRecord, int, error)

	// AppendRecord persiste un record recién enriquecido. Se llama de a
	// uno: un crash a mitad de corrida pierde a lo sumo el record en vuelo.
	AppendRecord(ctx context.Context, leagueID string, rec domain.TransferRecord) error

	// MarkConsumed fija el marcador de completitud al cerrar una pasada
	// de enriquecimiento. Solo se adelanta cuando la pasada terminó — un
	// crash deja el marcador corto y la próxima corrida vuelve a pasar
	// por el ledger (el cache por evento evita lookups repetidos).
	MarkConsumed(ctx context.Context, leagueID string, consumed int) error

	// LoadResult devuelve el resultado cacheado, o nil si no hay.
	LoadResult(ctx context.Context, leagueID string) (*domain.Result, error)

	// SaveResult reemplaza el resultado cacheado.
	SaveResult(ctx context.Context, leagueID string, res domain.Result) error

	// Close cierra el backend limpiamente.
	Close() error
}
