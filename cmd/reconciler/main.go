package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/campaign-reconciler-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-reconciler-api/infrastructure/integrator/reporting/reportingclient"
	"github.com/vfg2006/campaign-reconciler-api/infrastructure/repository"
	"github.com/vfg2006/campaign-reconciler-api/internal/config"
	"github.com/vfg2006/campaign-reconciler-api/internal/usecases/reconciling"
)

var rootCmd = &cobra.Command{
	Use:   "reconciler",
	Short: "Reconciliação multi-fonte de métricas de campanha",
	Long: `Serviço de reconciliação que busca dados de performance (gasto, receita,
sessões, cliques, conversões e taxonomia) de múltiplos endpoints de
relatório e os funde em um registro canônico por (campanha, dia).`,
}

func main() {
	configureLogger()

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		// Falha crítica de fonte ou de escrita: sair com código não-zero
		logrus.WithError(err).Error("Execução terminou com erro")
		os.Exit(1)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// appContext agrupa as dependências compartilhadas entre os comandos
type appContext struct {
	cfg              *config.Config
	conn             *postgres.Connection
	factRepo         repository.CampaignFactRepository
	completenessRepo repository.SourceCompletenessRepository
	runRepo          repository.IngestionRunRepository
	reconciler       *reconciling.Service
}

func buildAppContext(ctx context.Context) (*appContext, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	factRepo := repository.NewCampaignFactRepository(conn)
	completenessRepo := repository.NewSourceCompletenessRepository(conn)
	runRepo := repository.NewIngestionRunRepository(conn)

	reportingClient := reportingclient.NewClient(cfg)

	reconciler := reconciling.NewService(cfg, reportingClient, factRepo, completenessRepo, runRepo)

	return &appContext{
		cfg:              cfg,
		conn:             conn,
		factRepo:         factRepo,
		completenessRepo: completenessRepo,
		runRepo:          runRepo,
		reconciler:       reconciler,
	}, nil
}
