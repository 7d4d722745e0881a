// Package memwatch samples process memory and raises pressure callbacks.
package memwatch

import (
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
	"go.uber.org/zap"
)

// Monitor periodically samples the resident set size of the current
// process and invokes callbacks when it crosses a threshold.
type Monitor struct {
	proc      *process.Process
	threshold uint64
	interval  time.Duration
	logger    *zap.Logger

	mu        sync.Mutex
	callbacks []func(rss uint64)

	stop    chan struct{}
	stopped sync.Once
}

// New creates a monitor that fires when RSS exceeds thresholdBytes,
// sampling every interval.
func New(thresholdBytes uint64, interval time.Duration, logger *zap.Logger) (*Monitor, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Monitor{
		proc:      proc,
		threshold: thresholdBytes,
		interval:  interval,
		logger:    logger,
		stop:      make(chan struct{}),
	}, nil
}

// OnHighMemory registers a callback invoked with the sampled RSS whenever
// it exceeds the threshold.
func (m *Monitor) OnHighMemory(fn func(rss uint64)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// RSS returns the current resident set size in bytes.
func (m *Monitor) RSS() (uint64, error) {
	info, err := m.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

// Start launches the sampling loop.
func (m *Monitor) Start() {
	go m.loop()
}

// Stop ends the sampling loop. Safe to call more than once.
func (m *Monitor) Stop() {
	m.stopped.Do(func() { close(m.stop) })
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sample()
		}
	}
}

func (m *Monitor) sample() {
	rss, err := m.RSS()
	if err != nil {
		m.logger.Warn("memory sample failed", zap.Error(err))
		return
	}
	if m.threshold == 0 || rss <= m.threshold {
		return
	}

	m.logger.Info("memory threshold exceeded",
		zap.Uint64("rss", rss), zap.Uint64("threshold", m.threshold))

	m.mu.Lock()
	callbacks := make([]func(uint64), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(rss)
	}
}
