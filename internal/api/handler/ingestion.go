package handler

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-reconciler-api/infrastructure/repository"
	"github.com/vfg2006/campaign-reconciler-api/internal/scheduler"
	"github.com/vfg2006/campaign-reconciler-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-reconciler-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RunIngestion dispara manualmente uma ingestão. Aceita ?date=YYYY-MM-DD;
// sem o parâmetro, usa o dia anterior (UTC).
func RunIngestion(syncService *scheduler.IngestionSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunIngestion")

		if syncService.IsRunning() {
			apiErrors.WriteError(w, apiErrors.ErrIngestionRunning, "Ingestão já em andamento", nil)
			return
		}

		targetDate := time.Now().UTC().AddDate(0, 0, -1)
		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			parsed, err := utils.ParseDate(dateStr)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use YYYY-MM-DD", nil)
				return
			}
			targetDate = *parsed
		}

		syncService.TriggerManualSync(targetDate)

		response := map[string]any{
			"message": "Ingestão iniciada com sucesso",
			"date":    targetDate.Format(time.DateOnly),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// GetIngestionStatus retorna o status do agendador de ingestão
func GetIngestionStatus(syncService *scheduler.IngestionSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := syncService.GetStatus()
		logrus.Debug("Status do agendador: ", utils.PrettyJson(status))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}

// GetCompleteness retorna os registros de completude de uma data — a visão
// que os dashboards usam para detectar ingestão degradada sem ler logs
func GetCompleteness(completenessRepo repository.SourceCompletenessRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateStr := r.URL.Query().Get("date")
		if dateStr == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro date é obrigatório", nil)
			return
		}

		date, err := utils.ParseDate(dateStr)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use YYYY-MM-DD", nil)
			return
		}

		records, err := completenessRepo.GetByDate(*date)
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar registros de completude")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar registros de completude", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

// GetIngestionRuns retorna o ledger de execuções de uma data
func GetIngestionRuns(runRepo repository.IngestionRunRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateStr := r.URL.Query().Get("date")
		if dateStr == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro date é obrigatório", nil)
			return
		}

		date, err := utils.ParseDate(dateStr)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use YYYY-MM-DD", nil)
			return
		}

		runs, err := runRepo.ListByDate(*date)
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar execuções de ingestão")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar execuções de ingestão", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(runs)
	}
}
