package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/alejandrodnm/kickledger/internal/domain"
	"github.com/alejandrodnm/kickledger/internal/ports"
	"github.com/google/uuid"
)

// Config contiene la configuración del pipeline.
type Config struct {
	League   domain.League
	PageSize int // avance de offset al paginar el feed (0 = 26)
}

// Pipeline es el orquestador de la reconciliación: fetch → merge →
// enrich → match → aggregate, estrictamente secuencial. Cada etapa
// persiste su salida para que corridas posteriores puedan saltarse las
// etapas upstream.
//
// Tres niveles de frescura dependientes:
//  1. el merge del ledger crudo corre SIEMPRE;
//  2. el enriquecimiento se salta si el marcador de completitud no creció
//     y no se fuerza refresh;
//  3. turnovers y resúmenes se reusan enteros del cache salvo refresh
//     forzado — nunca se parchean incrementalmente.
//
// Ejecuciones concurrentes contra el mismo Repository no están soportadas;
// el caller serializa (un proceso por liga).
type Pipeline struct {
	cfg      Config
	feed     ports.FeedProvider
	players  ports.PlayerProvider
	league   ports.LeagueProvider
	repo     ports.Repository
	enricher *Enricher
}

// New crea un Pipeline con todas las dependencias inyectadas.
func New(cfg Config, feed ports.FeedProvider, players ports.PlayerProvider, league ports.LeagueProvider, repo ports.Repository) *Pipeline {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 26
	}
	return &Pipeline{
		cfg:      cfg,
		feed:     feed,
		players:  players,
		league:   league,
		repo:     repo,
		enricher: NewEnricher(players, cfg.League.ID),
	}
}

// Run ejecuta una reconciliación completa y devuelve el resultado.
// forceRefresh fuerza el recálculo de enriquecimiento, emparejamiento y
// agregación; el merge del ledger corre igual en ambos casos.
func (p *Pipeline) Run(ctx context.Context, forceRefresh bool) (domain.Result, error) {
	leagueID := p.cfg.League.ID

	persisted, err := p.repo.LoadLedger(ctx, leagueID)
	if err != nil {
		return domain.Result{}, fmt.Errorf("pipeline.Run: load ledger: %w", err)
	}

	fresh, err := p.fetchFeed(ctx)
	if err != nil {
		return domain.Result{}, fmt.Errorf("pipeline.Run: %w", err)
	}

	merged := MergeLedger(persisted, fresh)
	if err := p.repo.SaveLedger(ctx, leagueID, merged); err != nil {
		return domain.Result{}, fmt.Errorf("pipeline.Run: save ledger: %w", err)
	}
	slog.Info("ledger merged",
		"persisted", len(persisted),
		"fetched", len(fresh),
		"total", len(merged),
	)

	records, err := p.enrichLedger(ctx, merged, forceRefresh)
	if err != nil {
		return domain.Result{}, fmt.Errorf("pipeline.Run: %w", err)
	}

	if !forceRefresh {
		cached, err := p.repo.LoadResult(ctx, leagueID)
		if err != nil {
			return domain.Result{}, fmt.Errorf("pipeline.Run: load result: %w", err)
		}
		if cached != nil {
			slog.Info("reusing cached result", "run_id", cached.RunID, "turnovers", len(cached.Turnovers))
			return *cached, nil
		}
	}

	turnovers, err := MatchTurnovers(ctx, records, p.cfg.League.Start, p.players)
	if err != nil {
		return domain.Result{}, fmt.Errorf("pipeline.Run: %w", err)
	}
	slog.Info("turnovers matched", "count", len(turnovers))

	managers, err := p.league.Managers(ctx, leagueID)
	if err != nil {
		return domain.Result{}, fmt.Errorf("pipeline.Run: %w", err)
	}
	names := make([]string, len(managers))
	for i, m := range managers {
		names[i] = m.Name
	}

	result := domain.Result{
		RunID:     uuid.New().String(),
		Turnovers: turnovers,
		Summaries: Summarize(turnovers, RecordsByManager(records, names)),
	}

	if err := p.repo.SaveResult(ctx, leagueID, result); err != nil {
		return domain.Result{}, fmt.Errorf("pipeline.Run: save result: %w", err)
	}

	slog.Info("reconciliation complete",
		"run_id", result.RunID,
		"managers", len(result.Summaries),
	)
	return result, nil
}

// fetchFeed baja el feed completo de la liga, página a página, hasta que
// llegue una página vacía o sin más resultados.
func (p *Pipeline) fetchFeed(ctx context.Context) ([]domain.FeedEvent, error) {
	var all []domain.FeedEvent

	for offset := 0; ; offset += p.cfg.PageSize {
		page, err := p.feed.FetchTransferPage(ctx, p.cfg.League.ID, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Events...)
		if !page.HasMore || len(page.Events) == 0 {
			break
		}
	}

	slog.Debug("feed fetched", "events", len(all))
	return all, nil
}

// enrichLedger materializa un TransferRecord por evento del ledger.
//
// Si el marcador de completitud alcanza al ledger y no se fuerza refresh,
// los records cacheados se reusan tal cual. Si no, se recorre el ledger en
// orden: los eventos ya enriquecidos salen del cache (enriquecer es
// idempotente por EventID), los nuevos pasan por el Enricher y se
// persisten de a uno — un crash a mitad de pasada pierde a lo sumo el
// record en vuelo.
func (p *Pipeline) enrichLedger(ctx context.Context, merged []domain.FeedEvent, forceRefresh bool) ([]domain.TransferRecord, error) {
	leagueID := p.cfg.League.ID

	cached, consumed, err := p.repo.LoadRecords(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	if !forceRefresh && consumed >= len(merged) {
		// El cache se escribe por append, así que un evento rezagado con
		// fecha vieja puede haber quedado fuera de lugar; el matcher
		// requiere orden por fecha, reordenamos estable al leer.
		sort.SliceStable(cached, func(i, j int) bool {
			return cached[i].Date.Before(cached[j].Date)
		})
		slog.Info("enrichment up to date, reusing cache", "records", len(cached))
		return cached, nil
	}

	byEvent := make(map[string]domain.TransferRecord, len(cached))
	for _, rec := range cached {
		if rec.Enriched {
			byEvent[rec.EventID] = rec
		}
	}

	records := make([]domain.TransferRecord, 0, len(merged))
	enriched := 0
	for _, ev := range merged {
		rec, ok := byEvent[ev.ID]
		if !ok {
			rec, err = p.enricher.Enrich(ctx, ev)
			if err != nil {
				return nil, err
			}
			if err := p.repo.AppendRecord(ctx, leagueID, rec); err != nil {
				return nil, fmt.Errorf("append record: %w", err)
			}
			enriched++
		}
		records = append(records, rec)
	}

	if err := p.repo.MarkConsumed(ctx, leagueID, len(merged)); err != nil {
		return nil, fmt.Errorf("mark consumed: %w", err)
	}

	slog.Info("records enriched", "new", enriched, "total", len(records))
	return records, nil
}
