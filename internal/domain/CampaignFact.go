package domain

import "time"

// SnapshotSource distingue a passada rápida/aproximada ("day") da passada
// lenta/autoritativa ("reconciled") para os mesmos dias de dados.
type SnapshotSource string

const (
	SnapshotSourceDay        SnapshotSource = "day"
	SnapshotSourceReconciled SnapshotSource = "reconciled"
)

// AggregationLevel define a granularidade da ingestão.
type AggregationLevel string

const (
	LevelCampaign AggregationLevel = "campaign"
	LevelAdset    AggregationLevel = "adset"
)

// CampaignFact é o snapshot imutável de um agregado de campanha no momento
// da escrita, com escopo (campaign_id, level, date, snapshot_source).
// No máximo uma linha viva por escopo, garantido por delete+insert.
type CampaignFact struct {
	ID                string            `json:"id,omitempty"`
	CampaignID        string            `json:"campaign_id"`
	NetworkCampaignID string            `json:"network_campaign_id,omitempty"`
	Level             AggregationLevel  `json:"level"`
	Date              time.Time         `json:"date"`
	SnapshotSource    SnapshotSource    `json:"snapshot_source"`
	Owner             string            `json:"owner,omitempty"`
	Lane              string            `json:"lane,omitempty"`
	Category          string            `json:"category,omitempty"`
	MediaSource       string            `json:"media_source,omitempty"`
	Site              string            `json:"site,omitempty"`
	AccountLabel      string            `json:"account_label,omitempty"`
	Platform          string            `json:"platform,omitempty"`
	CampaignName      string            `json:"campaign_name,omitempty"`
	AdsetID           string            `json:"adset_id,omitempty"`
	AdsetName         string            `json:"adset_name,omitempty"`
	SpendUSD          *float64          `json:"spend_usd"`
	RevenueUSD        *float64          `json:"revenue_usd"`
	Sessions          *float64          `json:"sessions"`
	Clicks            *float64          `json:"clicks"`
	Conversions       *float64          `json:"conversions"`
	AvgRPC            *float64          `json:"avg_rpc"`
	ROAS              *float64          `json:"roas"`
	Breakdown         SourceBreakdown   `json:"breakdown,omitempty"`
	CreatedAt         time.Time         `json:"created_at,omitempty"`
}

// SourceBreakdown guarda a contribuição numérica de cada fonte por métrica,
// persistida como payload opaco (novas fontes não exigem migração de esquema).
type SourceBreakdown map[string]map[string]float64
