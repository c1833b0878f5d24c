package observability

import (
	"testing"
	"time"

	"github.com/rs/zerolog/log"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("bridge-a", "GET", "/health", 200, 12*time.Millisecond)
	RecordBridgeMessage("bridge-a", "downstream", "DNS_PORT_CMD")
	SetConnectedPorts("bridge-a", 2)

	log.Debug().Msg("registration idempotent and recording paths executed")
}
