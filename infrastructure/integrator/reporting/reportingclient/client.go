package reportingclient

import (
	"fmt"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-reconciler-api/internal/config"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
	"github.com/vfg2006/campaign-reconciler-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client busca linhas brutas de um endpoint de relatório upstream.
// Cada endpoint expõe o mesmo contrato: GET <base>/<endpoint>?date=...&level=...
// retornando {"data": [ {...}, ... ]} sem esquema garantido além das listas
// de chaves candidatas conhecidas pela camada de normalização.
type Client interface {
	FetchReport(endpoint string, date time.Time, level domain.AggregationLevel) ([]domain.RawRow, error)
}

type ReportingClient struct {
	Cfg *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &ReportingClient{
		Cfg: cfg,
	}
}

func (c *ReportingClient) FetchReport(endpoint string, date time.Time, level domain.AggregationLevel) ([]domain.RawRow, error) {
	params := url.Values{}
	params.Set("date", date.Format("2006-01-02"))
	params.Set("level", string(level))
	params.Set("access_token", c.Cfg.Reporting.AccessToken)

	requestURL := fmt.Sprintf("%s/%s?%s", c.Cfg.Reporting.BaseURL, endpoint, params.Encode())

	timeout := time.Duration(c.Cfg.Reporting.TimeoutSeconds) * time.Second
	data, err := utils.MakeRequest(requestURL, timeout)
	if err != nil {
		// HTTPStatusError é preservado para o guard classificar a falha
		return nil, err
	}

	var response struct {
		Data []domain.RawRow `json:"data"`
	}
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, errors.Wrapf(err, "resposta inválida do endpoint %s", endpoint)
	}

	return response.Data, nil
}
