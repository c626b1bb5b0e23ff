package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/campaign-reconciler-api/internal/api"
	"github.com/vfg2006/campaign-reconciler-api/internal/scheduler"
	"github.com/vfg2006/campaign-reconciler-api/internal/usecases/authenticating"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe o agendador de ingestão e a API administrativa",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app, err := buildAppContext(ctx)
	if err != nil {
		return err
	}
	defer app.conn.Close()

	authenticator := authenticating.NewService(app.cfg)

	ingestionSyncService := scheduler.NewIngestionSyncService(app.reconciler, app.cfg)

	if err := ingestionSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de ingestão")
	} else {
		logrus.Info("Agendador de ingestão iniciado com sucesso")
	}

	server, err := api.New(
		app.cfg,
		authenticator,
		ingestionSyncService,
		app.completenessRepo,
		app.runRepo,
	)
	if err != nil {
		return err
	}

	return server.Run(ctx)
}
