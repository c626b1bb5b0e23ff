package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-reconciler-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
	"github.com/vfg2006/campaign-reconciler-api/pkg/utils"
)

const (
	ingestionRunsTable = "ingestion_runs ir"
)

type IngestionRunRepository interface {
	// Append grava a linha de auditoria da tentativa. O ledger é somente
	// inserção; reexecuções para a mesma data geram novas linhas.
	Append(run *domain.IngestionRun) error
	ListByDate(date time.Time) ([]*domain.IngestionRun, error)
}

type ingestionRunRepository struct {
	conn *postgres.Connection
}

func NewIngestionRunRepository(conn *postgres.Connection) IngestionRunRepository {
	return &ingestionRunRepository{
		conn: conn,
	}
}

func (r *ingestionRunRepository) Append(run *domain.IngestionRun) error {
	id := run.ID
	if id == "" {
		var err error
		id, err = utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id da execução: %w", err)
		}
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("ingestion_runs").
		Columns("id", "date", "source", "level", "status", "row_count", "message", "started_at", "finished_at").
		Values(
			id,
			run.Date.Format("2006-01-02"),
			run.Source,
			string(run.Level),
			string(run.Status),
			run.RowCount,
			run.Message,
			run.StartedAt,
			run.FinishedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *ingestionRunRepository) ListByDate(date time.Time) ([]*domain.IngestionRun, error) {
	query, args, err := squirrel.
		Select("ir.id, ir.date, ir.source, ir.level, ir.status, ir.row_count, ir.message, ir.started_at, ir.finished_at").
		From(ingestionRunsTable).
		Where(squirrel.Eq{"ir.date": date.Format("2006-01-02")}).
		OrderBy("ir.started_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.IngestionRun, 0)
	for rows.Next() {
		run := &domain.IngestionRun{}
		var level, status string

		err := rows.Scan(
			&run.ID,
			&run.Date,
			&run.Source,
			&level,
			&status,
			&run.RowCount,
			&run.Message,
			&run.StartedAt,
			&run.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear execução de ingestão: %w", err)
		}

		run.Level = domain.AggregationLevel(level)
		run.Status = domain.RunStatus(status)
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return runs, nil
}
