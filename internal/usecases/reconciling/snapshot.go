package reconciling

import (
	"bufio"
	"context"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// runSnapshot carrega um arquivo plano (JSON por linha) capturado
// previamente e o grava pelo mesmo writer idempotente, sem passar pelo
// aggregator. Usado para repor dias inteiros a partir de um dump.
func (s *Service) runSnapshot(ctx context.Context, opts RunOptions) (int, error) {
	if opts.SnapshotFile == "" {
		return 0, errors.New("modo snapshot exige o caminho do arquivo capturado")
	}

	file, err := os.Open(opts.SnapshotFile)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao abrir arquivo de snapshot")
	}
	defer file.Close()

	facts := make([]*domain.CampaignFact, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNumber := 0
	skipped := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}

		lineNumber++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		fact := &domain.CampaignFact{}
		if err := json.Unmarshal(line, fact); err != nil {
			logrus.WithFields(logrus.Fields{
				"file":  opts.SnapshotFile,
				"line":  lineNumber,
				"error": err.Error(),
			}).Warn("ingestion: skipping malformed snapshot line")
			skipped++
			continue
		}

		if fact.CampaignID == "" {
			skipped++
			continue
		}

		// O escopo da execução prevalece sobre o que o dump carregava
		fact.Level = opts.Level
		fact.Date = opts.Date
		fact.SnapshotSource = opts.SnapshotSource

		facts = append(facts, fact)
	}

	if err := scanner.Err(); err != nil {
		return 0, errors.Wrap(err, "erro ao ler arquivo de snapshot")
	}

	if err := s.factRepo.ReplaceBatch(facts); err != nil {
		return 0, &WriteError{Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"file":    opts.SnapshotFile,
		"facts":   len(facts),
		"skipped": skipped,
	}).Info("ingestion: snapshot load completed")

	return len(facts), nil
}
