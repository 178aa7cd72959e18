package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager collects entries from the front ends, aggregates them into
// batches by size or timeout, and hands the batches to a pool of workers
// that publish them through the configured Producer.
type Manager struct {
	workerCount int
	batchSize   int
	timeout     time.Duration

	producer Producer
	logger   *zap.Logger

	inputChan  chan Entry
	batchChan  chan []Entry
	shutdownCh chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

func NewManager(producer Producer, logger *zap.Logger, workerCount, batchSize int, timeout time.Duration) *Manager {
	return &Manager{
		workerCount: workerCount,
		batchSize:   batchSize,
		timeout:     timeout,
		producer:    producer,
		logger:      logger,
		inputChan:   make(chan Entry, workerCount*batchSize*2),
		batchChan:   make(chan []Entry, workerCount*2),
		shutdownCh:  make(chan struct{}),
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.logger.Info("starting audit manager",
		zap.Int("workers", m.workerCount),
		zap.Int("batch_size", m.batchSize))

	m.wg.Add(1)
	go m.runAggregator(ctx)

	for i := 0; i < m.workerCount; i++ {
		m.wg.Add(1)
		go m.runWorker(ctx, i)
	}
}

// Log queues an entry for publication. When the queue is unavailable the
// entry is published synchronously rather than dropped.
func (m *Manager) Log(ctx context.Context, entry Entry) {
	select {
	case m.inputChan <- entry:
	case <-ctx.Done():
		m.publish([]Entry{entry})
	}
}

// Shutdown flushes pending batches and stops the workers.
func (m *Manager) Shutdown(ctx context.Context) {
	m.once.Do(func() {
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			m.logger.Info("audit manager shutdown completed")
		case <-ctx.Done():
			m.logger.Warn("audit manager shutdown interrupted")
		}

		if err := m.producer.Close(); err != nil {
			m.logger.Error("failed to close audit producer", zap.Error(err))
		}
	})
}

func (m *Manager) runAggregator(ctx context.Context) {
	defer m.wg.Done()

	var (
		batch    []Entry
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	// On exit publish the remainder in place: the workers may have
	// already stopped, so handing the batch to batchChan could strand it
	// in the buffer.
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		if len(batch) > 0 {
			m.publish(batch)
		}
		close(m.batchChan)
	}()

	for {
		select {
		case entry := <-m.inputChan:
			batch = append(batch, entry)
			if len(batch) >= m.batchSize {
				m.dispatchBatch(batch)
				batch = nil
				timeoutC = nil
			} else if len(batch) == 1 {
				timer = time.NewTimer(m.timeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			m.dispatchBatch(batch)
			batch = nil
			timeoutC = nil

		case <-ctx.Done():
			batch = m.drainInput(batch)
			return

		case <-m.shutdownCh:
			batch = m.drainInput(batch)
			return
		}
	}
}

// drainInput collects whatever is already queued so the deferred flush
// publishes it. Called on both aggregator exits, cancellation included.
func (m *Manager) drainInput(batch []Entry) []Entry {
	for {
		select {
		case entry := <-m.inputChan:
			batch = append(batch, entry)
		default:
			return batch
		}
	}
}

func (m *Manager) dispatchBatch(batch []Entry) {
	batchCopy := make([]Entry, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		// All workers busy, publish in place so nothing is lost.
		m.publish(batchCopy)
	}
}

func (m *Manager) runWorker(ctx context.Context, id int) {
	defer m.wg.Done()

	for {
		select {
		case batch, ok := <-m.batchChan:
			if !ok {
				return
			}
			m.publish(batch)
		case <-ctx.Done():
			// Drain what the aggregator already dispatched.
			for {
				select {
				case batch, ok := <-m.batchChan:
					if !ok {
						return
					}
					m.publish(batch)
				default:
					return
				}
			}
		}
	}
}

func (m *Manager) publish(batch []Entry) {
	publishCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.producer.Publish(publishCtx, batch); err != nil {
		m.logger.Error("failed to publish audit batch",
			zap.Int("entries", len(batch)),
			zap.Error(err))
	}
}
