package reconciling

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
	"github.com/vfg2006/campaign-reconciler-api/pkg/utils"
)

// Nomes das métricas no breakdown por fonte
const (
	metricRevenueUSD  = "revenue_usd"
	metricSpendUSD    = "spend_usd"
	metricSessions    = "sessions"
	metricClicks      = "clicks"
	metricConversions = "conversions"
)

// CampaignAggregate acumula as contribuições de todas as fontes para uma
// chave canônica de campanha dentro de uma única execução.
//
// Atributos identificadores seguem first-writer-wins: a primeira fonte (na
// ordem de precedência) que informar um valor o fixa; fontes posteriores só
// preenchem lacunas. Métricas numéricas são estritamente aditivas, com o
// detalhamento por fonte retido para proveniência. AvgRPC é uma média
// pré-computada pelo upstream e portanto last-writer-wins (não é somável).
type CampaignAggregate struct {
	Key               string
	CampaignID        string
	NetworkCampaignID string
	NetworkID         *float64
	Owner             string
	Lane              string
	Category          string
	MediaSource       string
	Site              string
	CampaignName      string
	AdsetID           string
	AdsetName         string

	RevenueUSD  float64
	SpendUSD    float64
	Sessions    float64
	Clicks      float64
	Conversions float64
	AvgRPC      *float64

	Breakdown  domain.SourceBreakdown
	mergedFrom []string
}

// Aggregator é o estado de agregação de uma execução. Instanciado pelo
// driver a cada execução e passado por referência aos merges por fonte;
// não existe singleton de processo.
type Aggregator struct {
	aggregates map[string]*CampaignAggregate
	order      []string
	dropped    int
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		aggregates: make(map[string]*CampaignAggregate),
		order:      make([]string, 0),
	}
}

// MergeRows funde todas as linhas de uma fonte no estado da execução.
// O chamador garante a ordem de precedência entre fontes (SourcePriority).
func (a *Aggregator) MergeRows(source string, rows []domain.RawRow) {
	for _, row := range rows {
		a.mergeRow(source, row)
	}

	logrus.WithFields(logrus.Fields{
		"source":     source,
		"rows":       len(rows),
		"aggregates": len(a.aggregates),
		"dropped":    a.dropped,
	}).Debug("aggregator: merged source rows")
}

func (a *Aggregator) mergeRow(source string, row domain.RawRow) {
	campaignID := Pick(row, KeysCampaignID)
	networkCampaignID := Pick(row, KeysNetworkCampaignID)

	// Chave canônica: identificador interno, senão o nativo da rede;
	// linhas sem nenhum dos dois são inatribuíveis e descartadas
	key := campaignID
	if key == "" {
		key = networkCampaignID
	}
	if key == "" {
		a.dropped++
		logrus.WithField("source", source).Debug("aggregator: dropped unattributable row")
		return
	}

	agg, exists := a.aggregates[key]
	if !exists {
		agg = &CampaignAggregate{
			Key:       key,
			Breakdown: domain.SourceBreakdown{},
		}
		a.aggregates[key] = agg
		a.order = append(a.order, key)
	}

	// Backfill: atributo já definido nunca é sobrescrito
	setIfEmpty(&agg.CampaignID, campaignID)
	setIfEmpty(&agg.NetworkCampaignID, networkCampaignID)
	setIfEmpty(&agg.Owner, Pick(row, KeysOwner))
	setIfEmpty(&agg.Lane, Pick(row, KeysLane))
	setIfEmpty(&agg.Category, Pick(row, KeysCategory))
	setIfEmpty(&agg.MediaSource, Pick(row, KeysMediaSource))
	setIfEmpty(&agg.Site, Pick(row, KeysSite))
	setIfEmpty(&agg.CampaignName, Pick(row, KeysCampaignName))
	setIfEmpty(&agg.AdsetID, Pick(row, KeysAdsetID))
	setIfEmpty(&agg.AdsetName, Pick(row, KeysAdsetName))

	if agg.NetworkID == nil {
		agg.NetworkID = PickNumber(row, KeysNetworkID)
	}

	a.accumulate(agg, source, metricRevenueUSD, PickNumber(row, KeysRevenue), &agg.RevenueUSD)
	a.accumulate(agg, source, metricSpendUSD, PickNumber(row, KeysSpend), &agg.SpendUSD)
	a.accumulate(agg, source, metricSessions, PickNumber(row, KeysSessions), &agg.Sessions)
	a.accumulate(agg, source, metricClicks, PickNumber(row, KeysClicks), &agg.Clicks)
	a.accumulate(agg, source, metricConversions, PickNumber(row, KeysConversions), &agg.Conversions)

	// Média pré-computada: não somável, o último valor observado vence
	if rpc := PickNumber(row, KeysAvgRPC); rpc != nil {
		agg.AvgRPC = rpc
	}

	if len(agg.mergedFrom) == 0 || agg.mergedFrom[len(agg.mergedFrom)-1] != source {
		agg.mergedFrom = append(agg.mergedFrom, source)
	}
}

func (a *Aggregator) accumulate(agg *CampaignAggregate, source, metric string, value *float64, total *float64) {
	if value == nil {
		return
	}

	*total += *value

	perSource, ok := agg.Breakdown[source]
	if !ok {
		perSource = make(map[string]float64)
		agg.Breakdown[source] = perSource
	}
	perSource[metric] += *value
}

// Size retorna o número de agregados distintos da execução.
func (a *Aggregator) Size() int {
	return len(a.aggregates)
}

// Dropped retorna quantas linhas inatribuíveis foram descartadas.
func (a *Aggregator) Dropped() int {
	return a.dropped
}

// Emit materializa um fato por agregado, na ordem de descoberta das chaves.
// Totais zerados são normalizados para NULL e o ROAS só é calculado quando
// receita e gasto são ambos não-zero.
func (a *Aggregator) Emit(
	level domain.AggregationLevel,
	date time.Time,
	snapshotSource domain.SnapshotSource,
) []*domain.CampaignFact {
	facts := make([]*domain.CampaignFact, 0, len(a.order))

	for _, key := range a.order {
		agg := a.aggregates[key]

		fact := &domain.CampaignFact{
			CampaignID:        agg.Key,
			NetworkCampaignID: agg.NetworkCampaignID,
			Level:             level,
			Date:              date,
			SnapshotSource:    snapshotSource,
			Owner:             agg.Owner,
			Lane:              agg.Lane,
			Category:          agg.Category,
			MediaSource:       agg.MediaSource,
			Site:              agg.Site,
			AccountLabel:      AccountForSite(agg.Site),
			Platform:          PlatformForNetwork(agg.NetworkID),
			CampaignName:      agg.CampaignName,
			AdsetID:           agg.AdsetID,
			AdsetName:         agg.AdsetName,
			SpendUSD:          nullifyZero(agg.SpendUSD),
			RevenueUSD:        nullifyZero(agg.RevenueUSD),
			Sessions:          nullifyZero(agg.Sessions),
			Clicks:            nullifyZero(agg.Clicks),
			Conversions:       nullifyZero(agg.Conversions),
			AvgRPC:            agg.AvgRPC,
			Breakdown:         agg.Breakdown,
		}

		if agg.RevenueUSD != 0 && agg.SpendUSD != 0 {
			roas := utils.RoundWithFourDecimalPlace(agg.RevenueUSD / agg.SpendUSD)
			fact.ROAS = &roas
		}

		facts = append(facts, fact)
	}

	return facts
}

func setIfEmpty(target *string, value string) {
	if *target == "" && value != "" {
		*target = value
	}
}

// Um total acumulado em zero e uma métrica nunca observada colapsam ambos
// para NULL na emissão; o breakdown por fonte preserva os zeros explícitos.
func nullifyZero(total float64) *float64 {
	if total == 0 {
		return nil
	}
	return &total
}
