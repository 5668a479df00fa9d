package storage

// sqlite.go — backend SQLite (pure Go, sin CGo).
//
// Mismo contrato que el backend JSON, con el estado en tres tablas:
//   - `events`:  el ledger crudo, una fila por evento; rowid preserva el
//     orden merged (el sort estable por fecha ya viene hecho de arriba).
//   - `records`: cache de enriquecimiento, una fila por record, append-only;
//     `meta` guarda el marcador de completitud por liga.
//   - `results`: el documento final (turnovers + resúmenes) como JSON, una
//     fila por liga. Las estructuras anidadas no ameritan normalizarse: el
//     resultado se reusa entero o se recalcula entero, nunca se consulta
//     por partes.

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/kickledger/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
    league   TEXT NOT NULL,
    id       TEXT NOT NULL,
    date     DATETIME NOT NULL,
    type     INTEGER NOT NULL,
    seller   TEXT NOT NULL DEFAULT '',
    buyer    TEXT NOT NULL DEFAULT '',
    player_id TEXT NOT NULL DEFAULT '',
    team_id  TEXT NOT NULL DEFAULT '',
    price    INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (league, id)
);

CREATE TABLE IF NOT EXISTS records (
    league    TEXT NOT NULL,
    event_id  TEXT NOT NULL,
    date      DATETIME NOT NULL,
    kind      TEXT NOT NULL,
    manager   TEXT NOT NULL DEFAULT '',
    counterparty TEXT NOT NULL DEFAULT '',
    price     INTEGER NOT NULL DEFAULT 0,
    player_id TEXT NOT NULL DEFAULT '',
    team_id   TEXT NOT NULL DEFAULT '',
    first_name TEXT NOT NULL DEFAULT '',
    last_name  TEXT NOT NULL DEFAULT '',
    market_price INTEGER NOT NULL DEFAULT 0,
    enriched  INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (league, event_id)
);

CREATE TABLE IF NOT EXISTS meta (
    league   TEXT PRIMARY KEY,
    consumed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS results (
    league  TEXT PRIMARY KEY,
    run_id  TEXT NOT NULL,
    payload TEXT NOT NULL,
    saved_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_league ON events(league);
CREATE INDEX IF NOT EXISTS idx_records_league ON records(league);
`

// SQLiteRepository implementa ports.Repository usando SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository abre (o crea) la base de datos en la ruta dada y
// aplica el schema.
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteRepository: open %q: %w", dsn, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteRepository: apply schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// LoadLedger devuelve el ledger de la liga en el orden en que se guardó.
func (s *SQLiteRepository) LoadLedger(ctx context.Context, leagueID string) ([]domain.FeedEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, type, seller, buyer, player_id, team_id, price
		FROM events WHERE league = ? ORDER BY rowid
	`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("storage.LoadLedger: query: %w", err)
	}
	defer rows.Close()

	var events []domain.FeedEvent
	for rows.Next() {
		var ev domain.FeedEvent
		var date string
		if err := rows.Scan(&ev.ID, &date, &ev.Type,
			&ev.Meta.SellerName, &ev.Meta.BuyerName,
			&ev.Meta.PlayerID, &ev.Meta.TeamID, &ev.Meta.Price,
		); err != nil {
			return nil, fmt.Errorf("storage.LoadLedger: scan: %w", err)
		}
		ev.Date, _ = time.Parse(time.RFC3339, date)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// SaveLedger reemplaza el ledger de la liga por el set merged, en orden.
func (s *SQLiteRepository) SaveLedger(ctx context.Context, leagueID string, events []domain.FeedEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveLedger: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE league = ?`, leagueID); err != nil {
		return fmt.Errorf("storage.SaveLedger: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (league, id, date, type, seller, buyer, player_id, team_id, price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveLedger: prepare: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx,
			leagueID, ev.ID, ev.Date.UTC().Format(time.RFC3339), ev.Type,
			ev.Meta.SellerName, ev.Meta.BuyerName,
			ev.Meta.PlayerID, ev.Meta.TeamID, ev.Meta.Price,
		); err != nil {
			return fmt.Errorf("storage.SaveLedger: insert %s: %w", ev.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveLedger: commit: %w", err)
	}
	return nil
}

// LoadRecords devuelve los records cacheados (en orden de append) y el
// marcador de completitud.
func (s *SQLiteRepository) LoadRecords(ctx context.Context, leagueID string) ([]domain.TransferRecord, int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id, date, kind, manager, counterparty, price,
		       player_id, team_id, first_name, last_name, market_price, enriched
		FROM records WHERE league = ? ORDER BY rowid
	`, leagueID)
	if err != nil {
		return nil, 0, fmt.Errorf("storage.LoadRecords: query: %w", err)
	}
	defer rows.Close()

	var records []domain.TransferRecord
	for rows.Next() {
		var rec domain.TransferRecord
		var date, kind string
		var enriched int
		if err := rows.Scan(&rec.EventID, &date, &kind, &rec.Manager, &rec.Counterparty,
			&rec.Price, &rec.PlayerID, &rec.TeamID, &rec.FirstName, &rec.LastName,
			&rec.MarketPrice, &enriched,
		); err != nil {
			return nil, 0, fmt.Errorf("storage.LoadRecords: scan: %w", err)
		}
		rec.Date, _ = time.Parse(time.RFC3339, date)
		rec.Kind = domain.TransferKind(kind)
		rec.Enriched = enriched == 1
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var consumed int
	err = s.db.QueryRowContext(ctx, `SELECT consumed FROM meta WHERE league = ?`, leagueID).Scan(&consumed)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, fmt.Errorf("storage.LoadRecords: meta: %w", err)
	}
	return records, consumed, nil
}

// AppendRecord inserta (o reemplaza) un record del cache.
func (s *SQLiteRepository) AppendRecord(ctx context.Context, leagueID string, rec domain.TransferRecord) error {
	enriched := 0
	if rec.Enriched {
		enriched = 1
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO records
			(league, event_id, date, kind, manager, counterparty, price,
			 player_id, team_id, first_name, last_name, market_price, enriched)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		leagueID, rec.EventID, rec.Date.UTC().Format(time.RFC3339), string(rec.Kind),
		rec.Manager, rec.Counterparty, rec.Price,
		rec.PlayerID, rec.TeamID, rec.FirstName, rec.LastName,
		rec.MarketPrice, enriched,
	); err != nil {
		return fmt.Errorf("storage.AppendRecord: %s: %w", rec.EventID, err)
	}
	return nil
}

// MarkConsumed fija el marcador de completitud de la liga.
func (s *SQLiteRepository) MarkConsumed(ctx context.Context, leagueID string, consumed int) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO meta (league, consumed) VALUES (?, ?)
		ON CONFLICT(league) DO UPDATE SET consumed = excluded.consumed
	`, leagueID, consumed); err != nil {
		return fmt.Errorf("storage.MarkConsumed: %w", err)
	}
	return nil
}

// LoadResult devuelve el resultado cacheado o nil. Un payload corrupto se
// trata como cache ausente.
func (s *SQLiteRepository) LoadResult(ctx context.Context, leagueID string) (*domain.Result, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM results WHERE league = ?`, leagueID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.LoadResult: %w", err)
	}

	var res domain.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		slog.Warn("corrupt result payload, treating as empty", "league", leagueID, "err", err)
		return nil, nil
	}
	return &res, nil
}

// SaveResult reemplaza el resultado cacheado de la liga.
func (s *SQLiteRepository) SaveResult(ctx context.Context, leagueID string, res domain.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("storage.SaveResult: marshal: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO results (league, run_id, payload, saved_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(league) DO UPDATE SET
			run_id   = excluded.run_id,
			payload  = excluded.payload,
			saved_at = excluded.saved_at
	`, leagueID, res.RunID, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("storage.SaveResult: %w", err)
	}
	return nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteRepository) Close() error {
	return s.db.Close()
}
