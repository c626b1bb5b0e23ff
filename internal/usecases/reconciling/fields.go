package reconciling

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
)

// Listas de chaves candidatas por campo lógico. Cada fonte nomeia os mesmos
// campos de forma diferente; a primeira chave presente vence. Manter as
// listas aqui preserva a auditabilidade de onde cada valor se originou.
var (
	KeysCampaignID        = []string{"campaign_id", "campaignId", "campaign", "id"}
	KeysNetworkCampaignID = []string{"network_campaign_id", "external_campaign_id", "tracker_id"}

	KeysOwner        = []string{"owner", "buyer", "media_buyer"}
	KeysLane         = []string{"lane", "vertical", "traffic_lane"}
	KeysCategory     = []string{"category", "niche"}
	KeysMediaSource  = []string{"media_source", "traffic_source", "source"}
	KeysSite         = []string{"site", "property", "domain"}
	KeysCampaignName = []string{"campaign_name", "name"}
	KeysAdsetID      = []string{"adset_id", "ad_group_id", "adsetId"}
	KeysAdsetName    = []string{"adset_name", "ad_group_name"}
	KeysNetworkID    = []string{"network_id", "network"}

	KeysRevenue     = []string{"revenue", "revenue_usd", "publisher_revenue", "amount"}
	KeysSpend       = []string{"spend", "spend_usd", "cost", "media_cost"}
	KeysSessions    = []string{"sessions", "visits", "lander_visits"}
	KeysClicks      = []string{"clicks", "link_clicks"}
	KeysConversions = []string{"conversions", "purchases", "actions"}
	KeysAvgRPC      = []string{"avg_rpc", "rpc", "revenue_per_click"}
)

// Pick retorna o valor da primeira chave candidata presente, não-nula e,
// quando string, não-vazia. Usado para atributos identificadores.
func Pick(row domain.RawRow, candidateKeys []string) string {
	for _, key := range candidateKeys {
		value, ok := row[key]
		if !ok || value == nil {
			continue
		}

		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		case bool:
			continue
		default:
			s := fmt.Sprintf("%v", v)
			if strings.TrimSpace(s) != "" {
				return s
			}
		}
	}

	return ""
}

// PickNumber retorna o primeiro valor candidato coercível para número finito.
// Um valor presente igual a zero é contribuição aditiva legítima e é
// retornado normalmente — nunca tratado como ausente.
func PickNumber(row domain.RawRow, candidateKeys []string) *float64 {
	for _, key := range candidateKeys {
		value, ok := row[key]
		if !ok || value == nil {
			continue
		}

		var parsed float64
		switch v := value.(type) {
		case float64:
			parsed = v
		case int:
			parsed = float64(v)
		case int64:
			parsed = float64(v)
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				continue
			}
			f, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				continue
			}
			parsed = f
		default:
			continue
		}

		if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			continue
		}

		return &parsed
	}

	return nil
}
