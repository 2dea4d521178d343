package sse

import (
	"log/slog"
	"sync"
	"time"
)

// KeepAliveStrategy defines how keep-alive pings are sent on an idle stream
type KeepAliveStrategy interface {
	// Start begins sending pings through writer. The returned channel closes
	// once the strategy has stopped, including after a failed write.
	Start(writer KeepAliveWriter, logger *slog.Logger) <-chan struct{}

	// Stop terminates the keep-alive. Safe to call more than once.
	Stop()
}

// KeepAliveWriter writes a keep-alive message
type KeepAliveWriter interface {
	WriteKeepAlive() error
}

// TickerKeepAlive pings at a fixed interval until stopped or a write fails
type TickerKeepAlive struct {
	interval time.Duration
	done     chan struct{}
	once     sync.Once
}

var _ KeepAliveStrategy = (*TickerKeepAlive)(nil)

// NewTickerKeepAlive creates a ticker-based keep-alive strategy
func NewTickerKeepAlive(interval time.Duration) *TickerKeepAlive {
	return &TickerKeepAlive{
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start launches the ping loop
func (k *TickerKeepAlive) Start(writer KeepAliveWriter, logger *slog.Logger) <-chan struct{} {
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(k.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := writer.WriteKeepAlive(); err != nil {
					logger.Debug("keep-alive write failed, stopping", "error", err)
					return
				}
			case <-k.done:
				return
			}
		}
	}()

	return stopped
}

// Stop terminates the ping loop
func (k *TickerKeepAlive) Stop() {
	k.once.Do(func() { close(k.done) })
}
