package domain

import "time"

// FetchStatus é o estado terminal de uma fonte em uma execução.
type FetchStatus string

const (
	FetchStatusOK      FetchStatus = "ok"
	FetchStatusPartial FetchStatus = "partial"
	FetchStatusFailed  FetchStatus = "failed"
)

// SourceCompleteness é o registro de completude por (date, endpoint).
// Substituído via delete+insert quando a mesma data é reingerida; registros
// de datas anteriores alimentam a baseline de qualidade das execuções futuras.
type SourceCompleteness struct {
	Date            time.Time   `json:"date"`
	Endpoint        string      `json:"endpoint"`
	Status          FetchStatus `json:"status"`
	RowCount        int         `json:"row_count"`
	ExpectedMinimum *int        `json:"expected_minimum,omitempty"`
	HasRevenue      bool        `json:"has_revenue"`
	HasSpend        bool        `json:"has_spend"`
	ErrorMessage    *string     `json:"error_message,omitempty"`
	RetryCount      int         `json:"retry_count"`
	CreatedAt       time.Time   `json:"created_at,omitempty"`
}
