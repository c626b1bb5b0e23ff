package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
	"github.com/vfg2006/campaign-reconciler-api/internal/usecases/reconciling"
	"github.com/vfg2006/campaign-reconciler-api/pkg/utils"
)

var (
	ingestDate         string
	ingestLevel        string
	ingestSnapshot     string
	ingestMode         string
	ingestSnapshotFile string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Executa uma ingestão única para a data-alvo",
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDate, "date", "", "Data-alvo (YYYY-MM-DD, padrão: hoje UTC)")
	ingestCmd.Flags().StringVar(&ingestLevel, "level", "campaign", "Granularidade: campaign ou adset")
	ingestCmd.Flags().StringVar(&ingestSnapshot, "snapshot", "day", "Proveniência do snapshot: day ou reconciled")
	ingestCmd.Flags().StringVar(&ingestMode, "mode", "remote", "Modo de operação: remote ou snapshot")
	ingestCmd.Flags().StringVar(&ingestSnapshotFile, "file", "", "Arquivo capturado (obrigatório no modo snapshot)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	targetDate := utils.TruncateToUTCDay(time.Now())
	if ingestDate != "" {
		parsed, err := utils.ParseDate(ingestDate)
		if err != nil {
			return errors.Wrap(err, "data inválida, use YYYY-MM-DD")
		}
		targetDate = *parsed
	}

	level := domain.AggregationLevel(ingestLevel)
	if level != domain.LevelCampaign && level != domain.LevelAdset {
		return errors.Errorf("nível inválido: %s (use campaign ou adset)", ingestLevel)
	}

	snapshotSource := domain.SnapshotSource(ingestSnapshot)
	if snapshotSource != domain.SnapshotSourceDay && snapshotSource != domain.SnapshotSourceReconciled {
		return errors.Errorf("proveniência inválida: %s (use day ou reconciled)", ingestSnapshot)
	}

	if ingestMode != reconciling.ModeRemote && ingestMode != reconciling.ModeSnapshot {
		return errors.Errorf("modo inválido: %s (use remote ou snapshot)", ingestMode)
	}

	app, err := buildAppContext(ctx)
	if err != nil {
		return err
	}
	defer app.conn.Close()

	opts := reconciling.RunOptions{
		Date:           targetDate,
		Level:          level,
		SnapshotSource: snapshotSource,
		Mode:           ingestMode,
		SnapshotFile:   ingestSnapshotFile,
	}

	return app.reconciler.Run(ctx, opts)
}
