package reconciling

import "fmt"

// networkPlatforms traduz o identificador numérico de rede reportado pelo
// tracker para o rótulo da plataforma de mídia.
var networkPlatforms = map[int]string{
	1: "facebook",
	2: "google",
	3: "taboola",
	4: "outbrain",
	5: "tiktok",
	6: "bing",
	7: "snapchat",
}

// siteAccounts traduz o site bruto reportado pelas fontes para o rótulo da
// conta operacional responsável.
var siteAccounts = map[string]string{
	"finance.dailyreader.com": "finance-us",
	"health.dailyreader.com":  "health-us",
	"auto.dailyreader.com":    "auto-us",
	"home.dailyreader.com":    "home-us",
	"finance.leitordiario.br": "finance-br",
	"saude.leitordiario.br":   "health-br",
}

// PlatformForNetwork resolve o rótulo da plataforma; redes não mapeadas
// recebem um rótulo sintético estável para não silenciar dados novos.
func PlatformForNetwork(networkID *float64) string {
	if networkID == nil {
		return ""
	}

	id := int(*networkID)
	if platform, ok := networkPlatforms[id]; ok {
		return platform
	}

	return fmt.Sprintf("network-%d", id)
}

// AccountForSite resolve o rótulo da conta; sites não mapeados ficam com
// "unmapped" para aparecerem nos relatórios de cobertura.
func AccountForSite(site string) string {
	if site == "" {
		return ""
	}

	if account, ok := siteAccounts[site]; ok {
		return account
	}

	return "unmapped"
}
