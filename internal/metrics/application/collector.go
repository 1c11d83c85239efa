package application

import (
	"context"
	"sync"
	"time"

	"github.com/chrisvarga/gimli/internal/metrics/domain"
	sharedlogger "github.com/chrisvarga/gimli/internal/shared/logger"
)

const (
	// defaultCPUWindow is the measurement window between the two CPU tick
	// readings. The window itself drives the CPU sampler's cadence.
	defaultCPUWindow = 3 * time.Second

	// defaultInterval is the cadence of the load, memory and interface
	// samplers.
	defaultInterval = time.Second
)

// Collector runs one long-lived sampler goroutine per metric family and
// publishes results into the shared snapshot. A failed read is logged and
// retried on the next cycle; the previously published family value stays in
// place. Failures are never fatal.
type Collector struct {
	logger sharedlogger.Logger
	reader domain.SystemReader
	snap   *domain.Snapshot

	cpuWindow time.Duration
	interval  time.Duration

	wg sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// NewCollector creates a new collector publishing into snap.
func NewCollector(logger sharedlogger.Logger, reader domain.SystemReader, snap *domain.Snapshot) *Collector {
	ctx, cancel := context.WithCancel(context.Background())
	return &Collector{
		logger:    logger,
		reader:    reader,
		snap:      snap,
		cpuWindow: defaultCPUWindow,
		interval:  defaultInterval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the four sampler goroutines. They run until Stop.
func (c *Collector) Start() {
	samplers := []func(){c.runCPU, c.runLoad, c.runMem, c.runInterfaces}
	c.wg.Add(len(samplers))
	for _, sampler := range samplers {
		go func(run func()) {
			defer c.wg.Done()
			run()
		}(sampler)
	}
}

// Stop cancels all sampler loops and waits for them to finish, honoring the
// caller's deadline.
func (c *Collector) Stop(ctx context.Context) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// runCPU takes two tick readings separated by the measurement window and
// publishes the derived percentages. There is no separate sleep; the window
// is the cadence.
func (c *Collector) runCPU() {
	for {
		prev, err := c.reader.CPUTicks(c.ctx)
		if err != nil {
			c.logger.Warn("CPU sample failed", "err", err)
			if !c.sleep(c.cpuWindow) {
				return
			}
			continue
		}

		if !c.sleep(c.cpuWindow) {
			return
		}

		cur, err := c.reader.CPUTicks(c.ctx)
		if err != nil {
			c.logger.Warn("CPU sample failed", "err", err)
			continue
		}

		c.snap.SetCPU(domain.CPUPercent(prev, cur))
	}
}

func (c *Collector) runLoad() {
	c.sampleLoad()
	c.tick(c.sampleLoad)
}

func (c *Collector) runMem() {
	c.sampleMem()
	c.tick(c.sampleMem)
}

func (c *Collector) runInterfaces() {
	c.sampleInterfaces()
	c.tick(c.sampleInterfaces)
}

// tick runs sample on every interval until the collector is stopped.
func (c *Collector) tick(sample func()) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sample()
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Collector) sampleLoad() {
	v, err := c.reader.LoadAvg(c.ctx)
	if err != nil {
		c.logger.Warn("Load sample failed", "err", err)
		return
	}
	c.snap.SetLoad(v)
}

func (c *Collector) sampleMem() {
	v, err := c.reader.MemInfo(c.ctx)
	if err != nil {
		c.logger.Warn("Memory sample failed", "err", err)
		return
	}
	c.snap.SetMem(v)
}

func (c *Collector) sampleInterfaces() {
	v, err := c.reader.IPv4Interfaces(c.ctx)
	if err != nil {
		c.logger.Warn("Interface scan failed", "err", err)
		return
	}
	c.snap.SetInterfaces(v)
}

// sleep waits for d, returning false if the collector was stopped first.
func (c *Collector) sleep(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-c.ctx.Done():
		return false
	}
}
