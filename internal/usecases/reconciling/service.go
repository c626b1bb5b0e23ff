package reconciling

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-reconciler-api/infrastructure/repository"
	"github.com/vfg2006/campaign-reconciler-api/internal/config"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
)

// SourceFetcher é o contrato da camada de adaptadores de fonte
// (implementado por reportingclient.Client).
type SourceFetcher interface {
	FetchReport(endpoint string, date time.Time, level domain.AggregationLevel) ([]domain.RawRow, error)
}

// SourceSpec rotula estaticamente cada fonte como crítica ou opcional.
// Fontes críticas (receita + metadados de identidade) abortam a execução
// quando falham; opcionais apenas degradam a completude.
type SourceSpec struct {
	Name     string
	Critical bool
}

// SourcePriority é a ordem explícita e documentada de merge entre fontes.
// As fontes autoritativas de receita/taxonomia vêm antes das fontes de
// gasto, garantindo que o backfill first-writer-wins nunca deixe uma fonte
// fraca sobrescrever a taxonomia forte. Reordenar esta lista muda o
// comportamento do merge — não reordene sem revisar o aggregator.
var SourcePriority = []SourceSpec{
	{Name: "s1_daily", Critical: true},
	{Name: "campaign_catalog", Critical: true},
	{Name: "facebook_spend", Critical: false},
	{Name: "google_spend", Critical: false},
	{Name: "taboola_report", Critical: false},
	{Name: "outbrain_report", Critical: false},
	{Name: "tiktok_spend", Critical: false},
	{Name: "bing_spend", Critical: false},
	{Name: "pixel_conversions", Critical: false},
	{Name: "ga4_sessions", Critical: false},
}

// RunOptions parametriza uma execução de ingestão.
type RunOptions struct {
	Date           time.Time
	Level          domain.AggregationLevel
	SnapshotSource domain.SnapshotSource
	// Mode: "remote" busca e agrega as fontes ao vivo; "snapshot" carrega
	// um arquivo capturado previamente, sem passar pelo aggregator.
	Mode         string
	SnapshotFile string
}

const (
	ModeRemote   = "remote"
	ModeSnapshot = "snapshot"
)

// Service orquestra a reconciliação multi-fonte de uma data-alvo.
type Service struct {
	cfg              *config.Config
	fetcher          SourceFetcher
	factRepo         repository.CampaignFactRepository
	completenessRepo repository.SourceCompletenessRepository
	runRepo          repository.IngestionRunRepository
	sources          []SourceSpec
	guard            *Guard
}

func NewService(
	cfg *config.Config,
	fetcher SourceFetcher,
	factRepo repository.CampaignFactRepository,
	completenessRepo repository.SourceCompletenessRepository,
	runRepo repository.IngestionRunRepository,
) *Service {
	return &Service{
		cfg:              cfg,
		fetcher:          fetcher,
		factRepo:         factRepo,
		completenessRepo: completenessRepo,
		runRepo:          runRepo,
		sources:          SourcePriority,
		guard:            NewGuard(),
	}
}

// Run executa a ingestão completa para a data/nível. A linha do ledger é
// sempre gravada por último, inclusive nas falhas; todas as escritas são
// idempotentes, então reinvocar para a mesma data é sempre seguro.
func (s *Service) Run(ctx context.Context, opts RunOptions) (err error) {
	startedAt := time.Now().UTC()
	rowCount := 0

	defer func() {
		status := domain.RunStatusSuccess
		message := fmt.Sprintf("modo %s concluído", opts.Mode)
		if err != nil {
			status = domain.RunStatusFailed
			message = err.Error()
		}

		run := &domain.IngestionRun{
			Date:       opts.Date,
			Source:     string(opts.SnapshotSource),
			Level:      opts.Level,
			Status:     status,
			RowCount:   rowCount,
			Message:    message,
			StartedAt:  startedAt,
			FinishedAt: time.Now().UTC(),
		}

		if ledgerErr := s.runRepo.Append(run); ledgerErr != nil {
			logrus.WithError(ledgerErr).Error("ingestion: failed to append run ledger row")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"date":            opts.Date.Format(time.DateOnly),
		"level":           opts.Level,
		"snapshot_source": opts.SnapshotSource,
		"mode":            opts.Mode,
	}).Info("ingestion: run started")

	if opts.Mode == ModeSnapshot {
		rowCount, err = s.runSnapshot(ctx, opts)
		return err
	}

	rowCount, err = s.runRemote(ctx, opts)
	return err
}

// runRemote processa as fontes sequencialmente, na ordem de SourcePriority.
// Essa ordem é estrutural: o backfill first-writer-wins do aggregator
// depende dela.
func (s *Service) runRemote(ctx context.Context, opts RunOptions) (int, error) {
	aggregator := NewAggregator()
	optionalFailures := 0

	for _, source := range s.sources {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}

		result, expectedMinimum := s.fetchSource(source, opts)

		s.recordCompleteness(source.Name, opts.Date, result, expectedMinimum)

		if !result.Success {
			if source.Critical {
				// A falha crítica invalida a execução inteira: nenhum
				// fato é escrito, mas a completude acima já ficou
				// registrada para diagnóstico
				return 0, &CriticalSourceError{Source: source.Name, Err: result.Err}
			}

			optionalFailures++
			logrus.WithFields(logrus.Fields{
				"source": source.Name,
				"error":  result.Err.Error(),
			}).Warn("ingestion: optional source failed, continuing without it")
			continue
		}

		aggregator.MergeRows(source.Name, result.Rows)
	}

	facts := aggregator.Emit(opts.Level, opts.Date, opts.SnapshotSource)

	if err := s.factRepo.ReplaceBatch(facts); err != nil {
		return 0, &WriteError{Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"date":              opts.Date.Format(time.DateOnly),
		"facts":             len(facts),
		"dropped_rows":      aggregator.Dropped(),
		"optional_failures": optionalFailures,
	}).Info("ingestion: run completed")

	return len(facts), nil
}

// fetchSource monta o orçamento de retry da fonte, consulta a baseline e
// executa o fetch guardado. Estados por fonte:
// PENDING → FETCHING (repetindo até o limite) → {OK | PARTIAL | FAILED}.
func (s *Service) fetchSource(source SourceSpec, opts RunOptions) (FetchResult, *int) {
	maxRetries := s.cfg.IngestionSync.OptionalMaxRetries
	if source.Critical {
		maxRetries = s.cfg.IngestionSync.CriticalMaxRetries
	}

	retryCfg := RetryConfig{
		MaxRetries:        maxRetries,
		InitialDelay:      time.Duration(s.cfg.IngestionSync.InitialDelayMillis) * time.Millisecond,
		MaxDelay:          time.Duration(s.cfg.IngestionSync.MaxDelayMillis) * time.Millisecond,
		RetryableStatuses: DefaultRetryableStatuses,
	}

	expectedMinimum, err := s.completenessRepo.ExpectedMinimum(source.Name, opts.Date)
	if err != nil {
		// Sem baseline a checagem degrada para "zero linhas"; não é fatal
		logrus.WithFields(logrus.Fields{
			"source": source.Name,
			"error":  err.Error(),
		}).Warn("ingestion: failed to load quality baseline")
		expectedMinimum = nil
	}

	result := s.guard.Do(source.Name, func() ([]domain.RawRow, error) {
		return s.fetcher.FetchReport(source.Name, opts.Date, opts.Level)
	}, retryCfg, expectedMinimum)

	return result, expectedMinimum
}

// recordCompleteness grava o registro por (date, endpoint) para qualquer
// desfecho, inclusive falha — dashboards não devem depender de logs para
// detectar ingestão degradada.
func (s *Service) recordCompleteness(endpoint string, date time.Time, result FetchResult, expectedMinimum *int) {
	status := domain.FetchStatusOK
	if !result.Success {
		status = domain.FetchStatusFailed
	} else if result.Partial {
		status = domain.FetchStatusPartial
	}

	record := &domain.SourceCompleteness{
		Date:            date,
		Endpoint:        endpoint,
		Status:          status,
		RowCount:        result.RowCount,
		ExpectedMinimum: expectedMinimum,
		HasRevenue:      result.HasRevenue,
		HasSpend:        result.HasSpend,
		RetryCount:      result.Attempts - 1,
	}

	if result.Err != nil {
		msg := result.Err.Error()
		record.ErrorMessage = &msg
	} else if result.Warning != "" {
		record.ErrorMessage = &result.Warning
	}

	if err := s.completenessRepo.Replace(record); err != nil {
		logrus.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"error":    err.Error(),
		}).Error("ingestion: failed to record source completeness")
	}
}
