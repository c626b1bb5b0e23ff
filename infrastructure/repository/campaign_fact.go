package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-reconciler-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
	"github.com/vfg2006/campaign-reconciler-api/pkg/utils"
)

const (
	campaignFactsTable = "campaign_facts cf"

	campaignFactColumns = `cf.id, cf.campaign_id, cf.network_campaign_id, cf.level, cf.date,
		cf.snapshot_source, cf.owner, cf.lane, cf.category, cf.media_source, cf.site,
		cf.account_label, cf.platform, cf.campaign_name, cf.adset_id, cf.adset_name,
		cf.spend_usd, cf.revenue_usd, cf.sessions, cf.clicks, cf.conversions,
		cf.avg_rpc, cf.roas, cf.breakdown, cf.created_at`
)

type CampaignFactRepository interface {
	// ReplaceBatch grava todos os fatos da execução de forma idempotente:
	// delete+insert por escopo (campaign_id, level, date, snapshot_source),
	// tudo em uma única transação. Qualquer falha aborta o lote inteiro.
	ReplaceBatch(facts []*domain.CampaignFact) error
	GetByScope(campaignID string, level domain.AggregationLevel, date time.Time, snapshotSource domain.SnapshotSource) (*domain.CampaignFact, error)
	ListByDate(date time.Time, level domain.AggregationLevel, snapshotSource domain.SnapshotSource) ([]*domain.CampaignFact, error)
}

type campaignFactRepository struct {
	conn *postgres.Connection
}

func NewCampaignFactRepository(conn *postgres.Connection) CampaignFactRepository {
	return &campaignFactRepository{
		conn: conn,
	}
}

func (r *campaignFactRepository) ReplaceBatch(facts []*domain.CampaignFact) error {
	if len(facts) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		for _, fact := range facts {
			if err := r.replaceOne(tx, fact); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *campaignFactRepository) replaceOne(tx *sql.Tx, fact *domain.CampaignFact) error {
	deleteQuery, deleteArgs, err := squirrel.
		Delete("campaign_facts").
		Where(squirrel.Eq{
			"campaign_id":     fact.CampaignID,
			"level":           string(fact.Level),
			"date":            fact.Date.Format("2006-01-02"),
			"snapshot_source": string(fact.SnapshotSource),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query de delete: %w", err)
	}

	if _, err := tx.Exec(deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("erro ao remover fato anterior da campanha %s: %w", fact.CampaignID, err)
	}

	var breakdownJSON []byte
	if fact.Breakdown != nil {
		breakdownJSON, err = json.Marshal(fact.Breakdown)
		if err != nil {
			return fmt.Errorf("erro ao serializar breakdown para JSON: %w", err)
		}
	}

	id := fact.ID
	if id == "" {
		id, err = utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id do fato: %w", err)
		}
	}

	insertQuery, insertArgs, err := squirrel.StatementBuilder.
		Insert("campaign_facts").
		Columns(
			"id", "campaign_id", "network_campaign_id", "level", "date",
			"snapshot_source", "owner", "lane", "category", "media_source", "site",
			"account_label", "platform", "campaign_name", "adset_id", "adset_name",
			"spend_usd", "revenue_usd", "sessions", "clicks", "conversions",
			"avg_rpc", "roas", "breakdown",
		).
		Values(
			id, fact.CampaignID, fact.NetworkCampaignID, string(fact.Level),
			fact.Date.Format("2006-01-02"), string(fact.SnapshotSource),
			fact.Owner, fact.Lane, fact.Category, fact.MediaSource, fact.Site,
			fact.AccountLabel, fact.Platform, fact.CampaignName, fact.AdsetID, fact.AdsetName,
			fact.SpendUSD, fact.RevenueUSD, fact.Sessions, fact.Clicks, fact.Conversions,
			fact.AvgRPC, fact.ROAS, breakdownJSON,
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
		return fmt.Errorf("erro ao inserir fato da campanha %s: %w", fact.CampaignID, err)
	}

	return nil
}

func (r *campaignFactRepository) GetByScope(
	campaignID string,
	level domain.AggregationLevel,
	date time.Time,
	snapshotSource domain.SnapshotSource,
) (*domain.CampaignFact, error) {
	query, args, err := squirrel.
		Select(campaignFactColumns).
		From(campaignFactsTable).
		Where(squirrel.Eq{
			"cf.campaign_id":     campaignID,
			"cf.level":           string(level),
			"cf.date":            date.Format("2006-01-02"),
			"cf.snapshot_source": string(snapshotSource),
		}).
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

	if !rows.Next() {
		return nil, rows.Err()
	}

	return r.scanFact(rows)
}

func (r *campaignFactRepository) ListByDate(
	date time.Time,
	level domain.AggregationLevel,
	snapshotSource domain.SnapshotSource,
) ([]*domain.CampaignFact, error) {
	query, args, err := squirrel.
		Select(campaignFactColumns).
		From(campaignFactsTable).
		Where(squirrel.Eq{
			"cf.level":           string(level),
			"cf.date":            date.Format("2006-01-02"),
			"cf.snapshot_source": string(snapshotSource),
		}).
		OrderBy("cf.campaign_id ASC").
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

	facts := make([]*domain.CampaignFact, 0)
	for rows.Next() {
		fact, err := r.scanFact(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear fato de campanha: %w", err)
		}
		facts = append(facts, fact)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return facts, nil
}

func (r *campaignFactRepository) scanFact(rows *sql.Rows) (*domain.CampaignFact, error) {
	fact := &domain.CampaignFact{}
	var breakdownJSON []byte
	var level, snapshotSource string

	err := rows.Scan(
		&fact.ID,
		&fact.CampaignID,
		&fact.NetworkCampaignID,
		&level,
		&fact.Date,
		&snapshotSource,
		&fact.Owner,
		&fact.Lane,
		&fact.Category,
		&fact.MediaSource,
		&fact.Site,
		&fact.AccountLabel,
		&fact.Platform,
		&fact.CampaignName,
		&fact.AdsetID,
		&fact.AdsetName,
		&fact.SpendUSD,
		&fact.RevenueUSD,
		&fact.Sessions,
		&fact.Clicks,
		&fact.Conversions,
		&fact.AvgRPC,
		&fact.ROAS,
		&breakdownJSON,
		&fact.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	fact.Level = domain.AggregationLevel(level)
	fact.SnapshotSource = domain.SnapshotSource(snapshotSource)

	if breakdownJSON != nil {
		breakdown := domain.SourceBreakdown{}
		if err := json.Unmarshal(breakdownJSON, &breakdown); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de breakdown: %w", err)
		}
		fact.Breakdown = breakdown
	}

	return fact, nil
}
