package reconciling

import (
	"os"
	"testing"

	"github.com/vfg2006/campaign-reconciler-api/pkg/log"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}
