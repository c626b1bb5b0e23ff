package reportingclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-reconciler-api/internal/config"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
	"github.com/vfg2006/campaign-reconciler-api/pkg/utils"
)

func newTestClient(baseURL string) Client {
	return NewClient(&config.Config{
		Reporting: config.Reporting{
			BaseURL:        baseURL,
			AccessToken:    "token-de-teste",
			TimeoutSeconds: 5,
		},
	})
}

func TestReportingClient_FetchReport(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Monta a URL com endpoint, data, nível e token", func(t *testing.T) {
		var gotPath string
		var gotQuery map[string][]string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			_, _ = w.Write([]byte(`{"data":[{"campaign_id":"CAMP001","revenue":120.5}]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		rows, err := client.FetchReport("s1_daily", date, domain.LevelCampaign)

		assert.NoError(t, err)
		assert.Equal(t, "/s1_daily", gotPath)
		assert.Equal(t, []string{"2024-03-10"}, gotQuery["date"])
		assert.Equal(t, []string{"campaign"}, gotQuery["level"])
		assert.Equal(t, []string{"token-de-teste"}, gotQuery["access_token"])

		assert.Len(t, rows, 1)
		assert.Equal(t, "CAMP001", rows[0]["campaign_id"])
		assert.Equal(t, 120.5, rows[0]["revenue"])
	})

	t.Run("Payload vazio retorna lista vazia, não erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		rows, err := client.FetchReport("ga4_sessions", date, domain.LevelCampaign)

		assert.NoError(t, err)
		assert.Len(t, rows, 0)
	})

	t.Run("Status não-2xx preserva o HTTPStatusError para o guard", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		rows, err := client.FetchReport("facebook_spend", date, domain.LevelCampaign)

		assert.Nil(t, rows)
		assert.Error(t, err)

		var statusErr *utils.HTTPStatusError
		assert.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	})

	t.Run("Corpo não-JSON retorna erro de resposta inválida", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>manutenção</html>`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		rows, err := client.FetchReport("s1_daily", date, domain.LevelCampaign)

		assert.Nil(t, rows)
		assert.Error(t, err)
	})
}
