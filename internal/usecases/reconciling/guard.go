package reconciling

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
	"github.com/vfg2006/campaign-reconciler-api/pkg/utils"
)

// Statuses HTTP transitórios que justificam retry com backoff. Qualquer
// outra falha é permanente e sobe imediatamente.
var DefaultRetryableStatuses = map[int]bool{
	408: true,
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// RetryConfig define o orçamento de retry de uma fonte. Fontes críticas
// recebem mais tentativas que opcionais (ver SourcePriority).
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	RetryableStatuses map[int]bool
}

// FetchResult é o resultado estruturado de um fetch guardado. O guard não
// produz nenhum outro efeito colateral.
type FetchResult struct {
	Success    bool
	Partial    bool
	Rows       []domain.RawRow
	RowCount   int
	HasRevenue bool
	HasSpend   bool
	Err        error
	HTTPStatus int
	Attempts   int
	Warning    string
}

// Guard envolve um fetch com retry exponencial e avaliação de qualidade
// pós-fetch contra a baseline histórica.
type Guard struct {
	// sleep é substituível nos testes para não esperar o backoff real
	sleep func(time.Duration)
}

func NewGuard() *Guard {
	return &Guard{
		sleep: time.Sleep,
	}
}

// Do executa o fetch com até cfg.MaxRetries novas tentativas para falhas
// transitórias, esperando min(MaxDelay, InitialDelay·2^tentativa) entre
// elas. No sucesso, roda a checagem de qualidade: zero linhas sempre marca
// PARTIAL; com baseline disponível, menos da metade dela também marca
// PARTIAL (aviso, não falha dura).
func (g *Guard) Do(
	source string,
	fetch func() ([]domain.RawRow, error),
	cfg RetryConfig,
	expectedMinimum *int,
) FetchResult {
	result := FetchResult{}

	retryable := cfg.RetryableStatuses
	if retryable == nil {
		retryable = DefaultRetryableStatuses
	}

	var rows []domain.RawRow
	var err error

	for attempt := 0; ; attempt++ {
		result.Attempts = attempt + 1

		rows, err = fetch()
		if err == nil {
			break
		}

		status := httpStatusOf(err)
		result.HTTPStatus = status

		if !retryable[status] || attempt >= cfg.MaxRetries {
			result.Err = errors.Wrapf(err, "fonte %s falhou após %d tentativa(s)", source, attempt+1)
			return result
		}

		delay := backoffDelay(cfg, attempt)
		logrus.WithFields(logrus.Fields{
			"source":      source,
			"attempt":     attempt + 1,
			"max_retries": cfg.MaxRetries,
			"http_status": status,
			"backoff":     delay.String(),
		}).Warn("ingestion: transient fetch failure, backing off")

		g.sleep(delay)
	}

	result.Success = true
	result.Rows = rows
	result.RowCount = len(rows)
	result.HasRevenue, result.HasSpend = scanMoneyFields(rows)

	if result.RowCount == 0 {
		result.Partial = true
		result.Warning = "fonte retornou zero linhas"
	} else if expectedMinimum != nil && result.RowCount < *expectedMinimum/2 {
		result.Partial = true
		result.Warning = "contagem de linhas abaixo de 50% da baseline"
		logrus.WithFields(logrus.Fields{
			"source":           source,
			"row_count":        result.RowCount,
			"expected_minimum": *expectedMinimum,
		}).Warn("ingestion: row count below quality baseline")
	}

	return result
}

func backoffDelay(cfg RetryConfig, attempt int) time.Duration {
	delay := cfg.InitialDelay << uint(attempt)
	if delay > cfg.MaxDelay || delay <= 0 {
		return cfg.MaxDelay
	}
	return delay
}

// scanMoneyFields procura campos reconhecidos de receita/gasto com valores
// positivos em qualquer linha do payload.
func scanMoneyFields(rows []domain.RawRow) (hasRevenue, hasSpend bool) {
	for _, row := range rows {
		if !hasRevenue {
			if v := PickNumber(row, KeysRevenue); v != nil && *v > 0 {
				hasRevenue = true
			}
		}
		if !hasSpend {
			if v := PickNumber(row, KeysSpend); v != nil && *v > 0 {
				hasSpend = true
			}
		}
		if hasRevenue && hasSpend {
			return
		}
	}
	return
}

func httpStatusOf(err error) int {
	var statusErr *utils.HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
