package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-reconciler-api/internal/config"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
	"github.com/vfg2006/campaign-reconciler-api/internal/usecases/reconciling"
	"github.com/vfg2006/campaign-reconciler-api/pkg/utils"
)

// IngestionSyncConfig representa a configuração do agendador de ingestão
type IngestionSyncConfig struct {
	CronSchedule   string
	Level          string
	SnapshotSource string
	SyncEnabled    bool
}

// IngestionSyncService gerencia o agendamento da reconciliação diária.
// O agendador garante uma única invocação por (date, level): não há
// controle de concorrência entre execuções no banco.
type IngestionSyncService struct {
	scheduler           *gocron.Scheduler
	config              IngestionSyncConfig
	appConfig           *config.Config
	reconciler          *reconciling.Service
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

// NewIngestionSyncService cria uma nova instância do agendador de ingestão
func NewIngestionSyncService(
	reconciler *reconciling.Service,
	appConfig *config.Config,
) *IngestionSyncService {
	syncConfig := IngestionSyncConfig{
		CronSchedule:   appConfig.IngestionSync.CronSchedule,
		Level:          appConfig.IngestionSync.Level,
		SnapshotSource: appConfig.IngestionSync.SnapshotSource,
		SyncEnabled:    appConfig.IngestionSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   syncConfig.CronSchedule,
		"level":           syncConfig.Level,
		"snapshot_source": syncConfig.SnapshotSource,
		"sync_enabled":    syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de ingestão carregada")

	return &IngestionSyncService{
		scheduler:  scheduler,
		config:     syncConfig,
		appConfig:  appConfig,
		reconciler: reconciler,
	}
}

// Start inicia o agendador
func (s *IngestionSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Ingestão agendada desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de ingestão")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runScheduledIngestion(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar ingestão: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de ingestão")
		s.scheduler.Stop()
	}()

	return nil
}

// runScheduledIngestion executa a ingestão do dia anterior (UTC)
func (s *IngestionSyncService) runScheduledIngestion(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ingestão já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	targetDate := utils.TruncateToUTCDay(time.Now().AddDate(0, 0, -1))

	opts := reconciling.RunOptions{
		Date:           targetDate,
		Level:          domain.AggregationLevel(s.config.Level),
		SnapshotSource: domain.SnapshotSource(s.config.SnapshotSource),
		Mode:           reconciling.ModeRemote,
	}

	logrus.WithFields(logrus.Fields{
		"date":  targetDate.Format(time.DateOnly),
		"level": opts.Level,
	}).Info("Iniciando ingestão agendada")

	s.lastSyncError = ""
	if err := s.reconciler.Run(ctx, opts); err != nil {
		s.lastSyncError = err.Error()
		logrus.WithError(err).Error("Erro na ingestão agendada")
		return
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"date":     targetDate.Format(time.DateOnly),
	}).Info("Ingestão agendada concluída")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma ingestão para a data informada
func (s *IngestionSyncService) TriggerManualSync(date time.Time) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ingestão já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.WithField("date", date.Format(time.DateOnly)).Info("Iniciando ingestão manual")

	go func() {
		s.syncMutex.Lock()
		if s.syncRunning {
			s.syncMutex.Unlock()
			return
		}
		s.syncRunning = true
		s.syncMutex.Unlock()

		defer func() {
			s.syncMutex.Lock()
			s.syncRunning = false
			s.syncMutex.Unlock()
		}()

		s.lastSyncStartedAt = time.Now()
		s.lastSyncError = ""

		opts := reconciling.RunOptions{
			Date:           utils.TruncateToUTCDay(date),
			Level:          domain.AggregationLevel(s.config.Level),
			SnapshotSource: domain.SnapshotSource(s.config.SnapshotSource),
			Mode:           reconciling.ModeRemote,
		}

		if err := s.reconciler.Run(context.Background(), opts); err != nil {
			s.lastSyncError = err.Error()
			logrus.WithError(err).Error("Erro na ingestão manual")
			return
		}

		s.lastSyncCompletedAt = time.Now()
	}()
}

// IsRunning informa se há ingestão em andamento
func (s *IngestionSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *IngestionSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_level":             s.config.Level,
		"sync_snapshot_source":   s.config.SnapshotSource,
		"sync_running":           s.IsRunning(),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
