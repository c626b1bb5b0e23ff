package reconciling

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	clientmocks "github.com/vfg2006/campaign-reconciler-api/infrastructure/integrator/reporting/reportingclient/mocks"
	"github.com/vfg2006/campaign-reconciler-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-reconciler-api/internal/config"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
	"github.com/vfg2006/campaign-reconciler-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		IngestionSync: config.IngestionSync{
			CriticalMaxRetries: 1,
			OptionalMaxRetries: 0,
			InitialDelayMillis: 1,
			MaxDelayMillis:     2,
		},
	}
}

type serviceMocks struct {
	fetcher          *clientmocks.MockClient
	factRepo         *mocks.MockCampaignFactRepository
	completenessRepo *mocks.MockSourceCompletenessRepository
	runRepo          *mocks.MockIngestionRunRepository
}

func newTestService(ctrl *gomock.Controller, sources []SourceSpec) (*Service, *serviceMocks) {
	m := &serviceMocks{
		fetcher:          clientmocks.NewMockClient(ctrl),
		factRepo:         mocks.NewMockCampaignFactRepository(ctrl),
		completenessRepo: mocks.NewMockSourceCompletenessRepository(ctrl),
		runRepo:          mocks.NewMockIngestionRunRepository(ctrl),
	}

	service := &Service{
		cfg:              testConfig(),
		fetcher:          m.fetcher,
		factRepo:         m.factRepo,
		completenessRepo: m.completenessRepo,
		runRepo:          m.runRepo,
		sources:          sources,
		guard:            &Guard{sleep: func(time.Duration) {}},
	}

	return service, m
}

func TestService_Run_Remote(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	opts := RunOptions{
		Date:           date,
		Level:          domain.LevelCampaign,
		SnapshotSource: domain.SnapshotSourceDay,
		Mode:           ModeRemote,
	}

	t.Run("Falha de fonte crítica invalida a execução sem escrever fatos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl, []SourceSpec{
			{Name: "s1_daily", Critical: true},
			{Name: "facebook_spend", Critical: false},
		})

		m.completenessRepo.EXPECT().
			ExpectedMinimum("s1_daily", date).
			Return(nil, nil)

		// Status 403 não é retryable: uma única tentativa
		m.fetcher.EXPECT().
			FetchReport("s1_daily", date, domain.LevelCampaign).
			Return(nil, &utils.HTTPStatusError{
				URL:        "https://reporting.internal/api/v2/s1_daily",
				StatusCode: 403,
				Status:     "403 Forbidden",
			})

		// A completude da fonte falhada ainda é registrada
		m.completenessRepo.EXPECT().
			Replace(gomock.Any()).
			DoAndReturn(func(record *domain.SourceCompleteness) error {
				assert.Equal(t, "s1_daily", record.Endpoint)
				assert.Equal(t, domain.FetchStatusFailed, record.Status)
				assert.NotNil(t, record.ErrorMessage)
				assert.Equal(t, 0, record.RetryCount)
				return nil
			})

		// O ledger registra a falha; ReplaceBatch nunca é chamado
		m.runRepo.EXPECT().
			Append(gomock.Any()).
			DoAndReturn(func(run *domain.IngestionRun) error {
				assert.Equal(t, domain.RunStatusFailed, run.Status)
				assert.Equal(t, 0, run.RowCount)
				assert.Contains(t, run.Message, "s1_daily")
				return nil
			})

		err := service.Run(context.Background(), opts)

		assert.Error(t, err)
		var criticalErr *CriticalSourceError
		assert.ErrorAs(t, err, &criticalErr)
		assert.Equal(t, "s1_daily", criticalErr.Source)
	})

	t.Run("Falha de fonte opcional não derruba a execução", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl, []SourceSpec{
			{Name: "s1_daily", Critical: true},
			{Name: "facebook_spend", Critical: false},
		})

		m.completenessRepo.EXPECT().
			ExpectedMinimum("s1_daily", date).
			Return(nil, nil)
		m.fetcher.EXPECT().
			FetchReport("s1_daily", date, domain.LevelCampaign).
			Return([]domain.RawRow{
				{"campaign_id": "CAMP001", "revenue": 120.5, "sessions": 40},
			}, nil)

		m.completenessRepo.EXPECT().
			ExpectedMinimum("facebook_spend", date).
			Return(nil, nil)
		m.fetcher.EXPECT().
			FetchReport("facebook_spend", date, domain.LevelCampaign).
			Return(nil, &utils.HTTPStatusError{
				URL:        "https://reporting.internal/api/v2/facebook_spend",
				StatusCode: 500,
				Status:     "500 Internal Server Error",
			})

		m.completenessRepo.EXPECT().Replace(gomock.Any()).Return(nil).Times(2)

		// Os fatos saem só com a contribuição da fonte crítica
		m.factRepo.EXPECT().
			ReplaceBatch(gomock.Any()).
			DoAndReturn(func(facts []*domain.CampaignFact) error {
				assert.Len(t, facts, 1)
				assert.Equal(t, "CAMP001", facts[0].CampaignID)
				assert.Equal(t, 120.5, *facts[0].RevenueUSD)
				assert.Nil(t, facts[0].SpendUSD)
				return nil
			})

		m.runRepo.EXPECT().
			Append(gomock.Any()).
			DoAndReturn(func(run *domain.IngestionRun) error {
				assert.Equal(t, domain.RunStatusSuccess, run.Status)
				assert.Equal(t, 1, run.RowCount)
				return nil
			})

		err := service.Run(context.Background(), opts)

		assert.NoError(t, err)
	})

	t.Run("Falha na escrita dos fatos vira WriteError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl, []SourceSpec{
			{Name: "s1_daily", Critical: true},
		})

		m.completenessRepo.EXPECT().ExpectedMinimum("s1_daily", date).Return(nil, nil)
		m.fetcher.EXPECT().
			FetchReport("s1_daily", date, domain.LevelCampaign).
			Return([]domain.RawRow{{"campaign_id": "CAMP001", "revenue": 1.0}}, nil)
		m.completenessRepo.EXPECT().Replace(gomock.Any()).Return(nil)

		m.factRepo.EXPECT().
			ReplaceBatch(gomock.Any()).
			Return(assert.AnError)

		m.runRepo.EXPECT().
			Append(gomock.Any()).
			DoAndReturn(func(run *domain.IngestionRun) error {
				assert.Equal(t, domain.RunStatusFailed, run.Status)
				return nil
			})

		err := service.Run(context.Background(), opts)

		assert.Error(t, err)
		var writeErr *WriteError
		assert.ErrorAs(t, err, &writeErr)
	})

	t.Run("Baseline carregada é repassada para o registro de completude", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl, []SourceSpec{
			{Name: "s1_daily", Critical: true},
		})

		baseline := 101
		m.completenessRepo.EXPECT().ExpectedMinimum("s1_daily", date).Return(&baseline, nil)

		// 40 linhas contra baseline de 101: PARTIAL, mas a execução segue
		rows := make([]domain.RawRow, 0, 40)
		for i := 0; i < 40; i++ {
			rows = append(rows, domain.RawRow{"campaign_id": "CAMP001", "revenue": 1.0})
		}
		m.fetcher.EXPECT().
			FetchReport("s1_daily", date, domain.LevelCampaign).
			Return(rows, nil)

		m.completenessRepo.EXPECT().
			Replace(gomock.Any()).
			DoAndReturn(func(record *domain.SourceCompleteness) error {
				assert.Equal(t, domain.FetchStatusPartial, record.Status)
				assert.Equal(t, 40, record.RowCount)
				assert.NotNil(t, record.ExpectedMinimum)
				assert.Equal(t, 101, *record.ExpectedMinimum)
				assert.True(t, record.HasRevenue)
				return nil
			})

		m.factRepo.EXPECT().ReplaceBatch(gomock.Any()).Return(nil)
		m.runRepo.EXPECT().Append(gomock.Any()).Return(nil)

		err := service.Run(context.Background(), opts)

		assert.NoError(t, err)
	})
}

func TestService_Run_Snapshot(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Carga de snapshot grava os fatos sem passar pelo aggregator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl, SourcePriority)

		snapshotFile := filepath.Join(t.TempDir(), "snapshot.jsonl")
		content := `{"campaign_id":"CAMP001","revenue_usd":10.5,"level":"adset","date":"2020-01-01T00:00:00Z"}
{"campaign_id":"CAMP002","spend_usd":3.25}
linha inválida
{"revenue_usd":99.9}
`
		assert.NoError(t, os.WriteFile(snapshotFile, []byte(content), 0o600))

		m.factRepo.EXPECT().
			ReplaceBatch(gomock.Any()).
			DoAndReturn(func(facts []*domain.CampaignFact) error {
				assert.Len(t, facts, 2)

				// O escopo da execução prevalece sobre o que o dump carregava
				assert.Equal(t, "CAMP001", facts[0].CampaignID)
				assert.Equal(t, domain.LevelCampaign, facts[0].Level)
				assert.Equal(t, date, facts[0].Date)
				assert.Equal(t, domain.SnapshotSourceReconciled, facts[0].SnapshotSource)

				assert.Equal(t, "CAMP002", facts[1].CampaignID)
				return nil
			})

		m.runRepo.EXPECT().
			Append(gomock.Any()).
			DoAndReturn(func(run *domain.IngestionRun) error {
				assert.Equal(t, domain.RunStatusSuccess, run.Status)
				assert.Equal(t, 2, run.RowCount)
				return nil
			})

		err := service.Run(context.Background(), RunOptions{
			Date:           date,
			Level:          domain.LevelCampaign,
			SnapshotSource: domain.SnapshotSourceReconciled,
			Mode:           ModeSnapshot,
			SnapshotFile:   snapshotFile,
		})

		assert.NoError(t, err)
	})

	t.Run("Modo snapshot sem arquivo é erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl, SourcePriority)

		m.runRepo.EXPECT().
			Append(gomock.Any()).
			DoAndReturn(func(run *domain.IngestionRun) error {
				assert.Equal(t, domain.RunStatusFailed, run.Status)
				return nil
			})

		err := service.Run(context.Background(), RunOptions{
			Date:           date,
			Level:          domain.LevelCampaign,
			SnapshotSource: domain.SnapshotSourceReconciled,
			Mode:           ModeSnapshot,
		})

		assert.Error(t, err)
	})
}
