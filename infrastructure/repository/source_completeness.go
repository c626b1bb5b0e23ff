package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-reconciler-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
)

const (
	sourceCompletenessTable = "source_completeness sc"

	// Janela de histórico usada pela baseline de qualidade
	baselineLookbackDays = 7
)

type SourceCompletenessRepository interface {
	// Replace grava o registro de completude via delete+insert por
	// (date, endpoint) — idempotente na reingestão da mesma data.
	Replace(record *domain.SourceCompleteness) error
	GetByDate(date time.Time) ([]*domain.SourceCompleteness, error)
	// ExpectedMinimum calcula a baseline: média (com floor) das contagens de
	// linhas das execuções OK com linhas > 0 dos 7 dias anteriores à data.
	// Retorna nil quando não há histórico.
	ExpectedMinimum(endpoint string, date time.Time) (*int, error)
}

type sourceCompletenessRepository struct {
	conn *postgres.Connection
}

func NewSourceCompletenessRepository(conn *postgres.Connection) SourceCompletenessRepository {
	return &sourceCompletenessRepository{
		conn: conn,
	}
}

func (r *sourceCompletenessRepository) Replace(record *domain.SourceCompleteness) error {
	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		deleteQuery, deleteArgs, err := squirrel.
			Delete("source_completeness").
			Where(squirrel.Eq{
				"date":     record.Date.Format("2006-01-02"),
				"endpoint": record.Endpoint,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query de delete: %w", err)
		}

		if _, err := tx.Exec(deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("erro ao remover registro de completude anterior: %w", err)
		}

		insertQuery, insertArgs, err := squirrel.StatementBuilder.
			Insert("source_completeness").
			Columns(
				"date", "endpoint", "status", "row_count", "expected_minimum",
				"has_revenue", "has_spend", "error_message", "retry_count",
			).
			Values(
				record.Date.Format("2006-01-02"),
				record.Endpoint,
				string(record.Status),
				record.RowCount,
				record.ExpectedMinimum,
				record.HasRevenue,
				record.HasSpend,
				record.ErrorMessage,
				record.RetryCount,
			).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query de insert: %w", err)
		}

		if _, err := tx.Exec(insertQuery, insertArgs...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
			}
			return fmt.Errorf("erro ao inserir registro de completude: %w", err)
		}

		return nil
	})
}

func (r *sourceCompletenessRepository) GetByDate(date time.Time) ([]*domain.SourceCompleteness, error) {
	query, args, err := squirrel.
		Select(`sc.date, sc.endpoint, sc.status, sc.row_count, sc.expected_minimum,
			sc.has_revenue, sc.has_spend, sc.error_message, sc.retry_count, sc.created_at`).
		From(sourceCompletenessTable).
		Where(squirrel.Eq{"sc.date": date.Format("2006-01-02")}).
		OrderBy("sc.endpoint ASC").
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

	records := make([]*domain.SourceCompleteness, 0)
	for rows.Next() {
		record := &domain.SourceCompleteness{}
		var status string

		err := rows.Scan(
			&record.Date,
			&record.Endpoint,
			&status,
			&record.RowCount,
			&record.ExpectedMinimum,
			&record.HasRevenue,
			&record.HasSpend,
			&record.ErrorMessage,
			&record.RetryCount,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de completude: %w", err)
		}

		record.Status = domain.FetchStatus(status)
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *sourceCompletenessRepository) ExpectedMinimum(endpoint string, date time.Time) (*int, error) {
	windowStart := date.AddDate(0, 0, -baselineLookbackDays)

	query, args, err := squirrel.
		Select("AVG(sc.row_count)").
		From(sourceCompletenessTable).
		Where(squirrel.Eq{
			"sc.endpoint": endpoint,
			"sc.status":   string(domain.FetchStatusOK),
		}).
		Where(squirrel.Gt{"sc.row_count": 0}).
		Where(squirrel.GtOrEq{"sc.date": windowStart.Format("2006-01-02")}).
		Where(squirrel.Lt{"sc.date": date.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var avg sql.NullFloat64
	if err := r.conn.QueryRow(query, args...).Scan(&avg); err != nil {
		return nil, fmt.Errorf("erro ao calcular baseline do endpoint %s: %w", endpoint, err)
	}

	if !avg.Valid {
		// Sem histórico: o guard degrada a checagem para "zero linhas"
		return nil, nil
	}

	expected := int(math.Floor(avg.Float64))
	return &expected, nil
}
