package status

import (
	"sync"

	"github.com/zettelwerk/ticket-gateway/internal/shared/logger"
	"go.uber.org/zap"
)

var (
	mu                 sync.RWMutex
	transportConnected bool
)

// SetTransportConnected sets the broker connection status
func SetTransportConnected(connected bool) {
	mu.Lock()
	previousStatus := transportConnected
	transportConnected = connected
	mu.Unlock()

	if previousStatus != connected {
		logger.Info("Transport connection status changed", zap.Bool("connected", connected))
	}
}

// IsTransportConnected returns the broker connection status
func IsTransportConnected() bool {
	mu.RLock()
	defer mu.RUnlock()
	return transportConnected
}
