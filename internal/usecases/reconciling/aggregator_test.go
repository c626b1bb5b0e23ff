package reconciling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
)

func TestAggregator_MergeRows(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Duas fontes somam métricas e preservam o breakdown por fonte", func(t *testing.T) {
		aggregator := NewAggregator()

		aggregator.MergeRows("s1_daily", []domain.RawRow{
			{
				"campaign_id": "CAMP001",
				"owner":       "joao",
				"revenue":     120.5,
				"sessions":    40,
			},
		})
		aggregator.MergeRows("facebook_spend", []domain.RawRow{
			{
				"id":    "CAMP001",
				"spend": 30.0,
			},
		})

		facts := aggregator.Emit(domain.LevelCampaign, date, domain.SnapshotSourceDay)

		assert.Len(t, facts, 1)
		fact := facts[0]

		assert.Equal(t, "CAMP001", fact.CampaignID)
		assert.Equal(t, "joao", fact.Owner)
		assert.Equal(t, 120.5, *fact.RevenueUSD)
		assert.Equal(t, 30.0, *fact.SpendUSD)
		assert.Equal(t, 40.0, *fact.Sessions)

		// ROAS = 120.5 / 30 com quatro casas
		assert.NotNil(t, fact.ROAS)
		assert.InDelta(t, 4.0167, *fact.ROAS, 0.0001)

		// Proveniência por fonte retida no breakdown
		assert.Equal(t, 120.5, fact.Breakdown["s1_daily"]["revenue_usd"])
		assert.Equal(t, 40.0, fact.Breakdown["s1_daily"]["sessions"])
		assert.Equal(t, 30.0, fact.Breakdown["facebook_spend"]["spend_usd"])
	})

	t.Run("Valores em string são coercidos antes da soma", func(t *testing.T) {
		aggregator := NewAggregator()

		aggregator.MergeRows("s1_daily", []domain.RawRow{
			{"id": "abc123", "revenue": "120.50", "sessions": "40"},
		})
		aggregator.MergeRows("taboola_report", []domain.RawRow{
			{"id": "abc123", "spend": "30.00"},
		})

		facts := aggregator.Emit(domain.LevelCampaign, date, domain.SnapshotSourceDay)

		assert.Len(t, facts, 1)
		assert.Equal(t, 120.5, *facts[0].RevenueUSD)
		assert.Equal(t, 30.0, *facts[0].SpendUSD)
		assert.Equal(t, 40.0, *facts[0].Sessions)
		assert.InDelta(t, 4.0167, *facts[0].ROAS, 0.0001)
	})

	t.Run("Métricas da mesma fonte em linhas repetidas são aditivas", func(t *testing.T) {
		aggregator := NewAggregator()

		aggregator.MergeRows("taboola_report", []domain.RawRow{
			{"campaign_id": "CAMP002", "spend": 10.0},
			{"campaign_id": "CAMP002", "spend": 15.0},
		})

		facts := aggregator.Emit(domain.LevelCampaign, date, domain.SnapshotSourceDay)

		assert.Len(t, facts, 1)
		assert.Equal(t, 25.0, *facts[0].SpendUSD)
		assert.Equal(t, 25.0, facts[0].Breakdown["taboola_report"]["spend_usd"])
	})

	t.Run("Atributo definido pela primeira fonte nunca é sobrescrito", func(t *testing.T) {
		aggregator := NewAggregator()

		aggregator.MergeRows("s1_daily", []domain.RawRow{
			{"campaign_id": "CAMP003", "owner": "maria", "lane": ""},
		})
		aggregator.MergeRows("campaign_catalog", []domain.RawRow{
			{"campaign_id": "CAMP003", "owner": "outro", "lane": "search"},
		})

		facts := aggregator.Emit(domain.LevelCampaign, date, domain.SnapshotSourceDay)

		assert.Len(t, facts, 1)
		// first-writer-wins no owner; lacuna de lane preenchida depois
		assert.Equal(t, "maria", facts[0].Owner)
		assert.Equal(t, "search", facts[0].Lane)
	})

	t.Run("Sem id interno a chave cai para o id da rede", func(t *testing.T) {
		aggregator := NewAggregator()

		aggregator.MergeRows("outbrain_report", []domain.RawRow{
			{"tracker_id": "NET-555", "spend": 5.0},
		})

		facts := aggregator.Emit(domain.LevelCampaign, date, domain.SnapshotSourceDay)

		assert.Len(t, facts, 1)
		assert.Equal(t, "NET-555", facts[0].CampaignID)
		assert.Equal(t, "NET-555", facts[0].NetworkCampaignID)
	})

	t.Run("Linha sem nenhum identificador é descartada", func(t *testing.T) {
		aggregator := NewAggregator()

		aggregator.MergeRows("ga4_sessions", []domain.RawRow{
			{"sessions": 100},
			{"campaign_id": "CAMP004", "sessions": 20},
		})

		assert.Equal(t, 1, aggregator.Size())
		assert.Equal(t, 1, aggregator.Dropped())
	})

	t.Run("Totais zerados são emitidos como NULL mas o breakdown guarda o zero", func(t *testing.T) {
		aggregator := NewAggregator()

		aggregator.MergeRows("bing_spend", []domain.RawRow{
			{"campaign_id": "CAMP005", "spend": 0.0},
		})

		facts := aggregator.Emit(domain.LevelCampaign, date, domain.SnapshotSourceDay)

		assert.Len(t, facts, 1)
		assert.Nil(t, facts[0].SpendUSD)
		assert.Nil(t, facts[0].RevenueUSD)
		assert.Nil(t, facts[0].ROAS)

		spend, ok := facts[0].Breakdown["bing_spend"]["spend_usd"]
		assert.True(t, ok)
		assert.Equal(t, 0.0, spend)
	})

	t.Run("ROAS só é calculado quando receita e gasto são ambos não-zero", func(t *testing.T) {
		aggregator := NewAggregator()

		aggregator.MergeRows("s1_daily", []domain.RawRow{
			{"campaign_id": "CAMP006", "revenue": 50.0},
		})

		facts := aggregator.Emit(domain.LevelCampaign, date, domain.SnapshotSourceDay)

		assert.Len(t, facts, 1)
		assert.Equal(t, 50.0, *facts[0].RevenueUSD)
		assert.Nil(t, facts[0].SpendUSD)
		assert.Nil(t, facts[0].ROAS)
	})

	t.Run("AvgRPC é last-writer-wins, nunca somado", func(t *testing.T) {
		aggregator := NewAggregator()

		aggregator.MergeRows("s1_daily", []domain.RawRow{
			{"campaign_id": "CAMP007", "avg_rpc": 0.45},
		})
		aggregator.MergeRows("pixel_conversions", []domain.RawRow{
			{"campaign_id": "CAMP007", "rpc": 0.52},
		})

		facts := aggregator.Emit(domain.LevelCampaign, date, domain.SnapshotSourceDay)

		assert.Len(t, facts, 1)
		assert.NotNil(t, facts[0].AvgRPC)
		assert.Equal(t, 0.52, *facts[0].AvgRPC)
	})

	t.Run("Emissão segue a ordem de descoberta das campanhas", func(t *testing.T) {
		aggregator := NewAggregator()

		aggregator.MergeRows("s1_daily", []domain.RawRow{
			{"campaign_id": "CAMP_B", "revenue": 1.0},
			{"campaign_id": "CAMP_A", "revenue": 2.0},
		})
		aggregator.MergeRows("facebook_spend", []domain.RawRow{
			{"campaign_id": "CAMP_A", "spend": 3.0},
			{"campaign_id": "CAMP_C", "spend": 4.0},
		})

		facts := aggregator.Emit(domain.LevelCampaign, date, domain.SnapshotSourceDay)

		assert.Len(t, facts, 3)
		assert.Equal(t, "CAMP_B", facts[0].CampaignID)
		assert.Equal(t, "CAMP_A", facts[1].CampaignID)
		assert.Equal(t, "CAMP_C", facts[2].CampaignID)
	})

	t.Run("Plataforma e rótulo de conta derivados dos lookups", func(t *testing.T) {
		aggregator := NewAggregator()

		aggregator.MergeRows("campaign_catalog", []domain.RawRow{
			{"campaign_id": "CAMP008", "network_id": 1, "site": "finance.dailyreader.com"},
		})

		facts := aggregator.Emit(domain.LevelCampaign, date, domain.SnapshotSourceDay)

		assert.Len(t, facts, 1)
		assert.Equal(t, "facebook", facts[0].Platform)
		assert.Equal(t, "finance-us", facts[0].AccountLabel)
	})
}
