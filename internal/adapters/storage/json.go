package storage

// json.go — backend de documentos JSON, uno por etapa y por liga:
//
//	<dir>/<liga>_ledger.json   eventos crudos deduplicados
//	<dir>/<liga>_records.json  records enriquecidos + marcador de completitud
//	<dir>/<liga>_result.json   turnovers + resúmenes de la última corrida
//
// Un documento ausente, vacío o con JSON inválido se trata como colección
// vacía (se loguea un warning): la etapa correspondiente recalcula desde
// cero, nunca es fatal. Las escrituras van a archivo temporal + rename
// para no dejar un documento a medias si el proceso muere escribiendo.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

// recordsDoc es el documento de records: los records más cuántos eventos
// del ledger consumió la última pasada completa de enriquecimiento.
type recordsDoc struct {
	Consumed int                     `json:"consumed"`
	Records  []domain.TransferRecord `json:"records"`
}

// JSONRepository implementa ports.Repository sobre archivos JSON.
type JSONRepository struct {
	dir string
}

// NewJSONRepository crea (si hace falta) el directorio de datos y devuelve
// el repositorio.
func NewJSONRepository(dir string) (*JSONRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewJSONRepository: mkdir %q: %w", dir, err)
	}
	return &JSONRepository{dir: dir}, nil
}

// LoadLedger devuelve el ledger persistido, vacío si no existe o está corrupto.
func (r *JSONRepository) LoadLedger(_ context.Context, leagueID string) ([]domain.FeedEvent, error) {
	var events []domain.FeedEvent
	if !r.readDoc(r.path(leagueID, "ledger"), &events) {
		return nil, nil
	}
	return events, nil
}

// SaveLedger reemplaza el ledger persistido.
func (r *JSONRepository) SaveLedger(_ context.Context, leagueID string, events []domain.FeedEvent) error {
	return r.writeDoc(r.path(leagueID, "ledger"), events)
}

// LoadRecords devuelve los records cacheados y el marcador de completitud.
func (r *JSONRepository) LoadRecords(_ context.Context, leagueID string) ([]domain.TransferRecord, int, error) {
	var doc recordsDoc
	if !r.readDoc(r.path(leagueID, "records"), &doc) {
		return nil, 0, nil
	}
	return doc.Records, doc.Consumed, nil
}

// AppendRecord agrega un record al documento de records. Read-modify-write
// del documento entero: a escala de feed de liga el costo no importa y
// mantiene el formato en un solo archivo legible.
func (r *JSONRepository) AppendRecord(_ context.Context, leagueID string, rec domain.TransferRecord) error {
	path := r.path(leagueID, "records")
	var doc recordsDoc
	if !r.readDoc(path, &doc) {
		doc = recordsDoc{}
	}
	doc.Records = append(doc.Records, rec)
	return r.writeDoc(path, doc)
}

// MarkConsumed fija el marcador de completitud.
func (r *JSONRepository) MarkConsumed(_ context.Context, leagueID string, consumed int) error {
	path := r.path(leagueID, "records")
	var doc recordsDoc
	if !r.readDoc(path, &doc) {
		doc = recordsDoc{}
	}
	doc.Consumed = consumed
	return r.writeDoc(path, doc)
}

// LoadResult devuelve el resultado cacheado, o nil si no hay (o no se pudo leer).
func (r *JSONRepository) LoadResult(_ context.Context, leagueID string) (*domain.Result, error) {
	var res domain.Result
	if !r.readDoc(r.path(leagueID, "result"), &res) {
		return nil, nil
	}
	return &res, nil
}

// SaveResult reemplaza el resultado cacheado.
func (r *JSONRepository) SaveResult(_ context.Context, leagueID string, res domain.Result) error {
	return r.writeDoc(r.path(leagueID, "result"), res)
}

// Close no tiene nada que cerrar en el backend de archivos.
func (r *JSONRepository) Close() error {
	return nil
}

// path arma la ruta del documento de una etapa para una liga.
func (r *JSONRepository) path(leagueID, stage string) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_%s.json", leagueID, stage))
}

// readDoc lee y decodifica un documento. Devuelve false si el documento
// no existe o está corrupto; en el segundo caso loguea el warning.
func (r *JSONRepository) readDoc(path string, out any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("unreadable cache document, treating as empty", "path", path, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("corrupt cache document, treating as empty", "path", path, "err", err)
		return false
	}
	return true
}

// writeDoc escribe un documento con indentación, vía tmp + rename.
func (r *JSONRepository) writeDoc(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("storage.writeDoc: marshal %q: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage.writeDoc: write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("storage.writeDoc: rename %q: %w", path, err)
	}
	return nil
}
