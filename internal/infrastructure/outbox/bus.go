package outbox

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	domoutbox "github.com/minimart/catalog-api/internal/domain/outbox"

	"go.uber.org/zap"
)

const (
	handlerTimeout = 30 * time.Second
	queueSize      = 1024
	fanoutCap      = 8
)

// Bus is an in-memory event bus for outbox-like fanout. It is not durable;
// a production deployment would persist events and dispatch from a worker.
type Bus struct {
	mu        sync.RWMutex
	subs      map[string][]domoutbox.Handler
	queue     chan domoutbox.Event
	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	log       *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		subs:  make(map[string][]domoutbox.Handler),
		queue: make(chan domoutbox.Event, queueSize),
		log:   logger.With(zap.String("component", "outbox")),
	}
}

func (b *Bus) Subscribe(eventName string, h domoutbox.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], h)
}

func (b *Bus) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		bg, cancel := context.WithCancel(ctx)
		b.cancel = cancel
		go b.dispatchLoop(bg)
		b.log.Info("event_bus_started")
	})
}

func (b *Bus) Stop(ctx context.Context) {
	_ = ctx
	b.stopOnce.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		close(b.queue)
		b.log.Info("event_bus_stopped")
	})
}

func (b *Bus) Publish(ctx context.Context, e domoutbox.Event) error {
	if e == nil {
		return nil
	}
	select {
	case b.queue <- e:
		return nil
	case <-ctx.Done():
		b.log.Warn("event_enqueue_aborted",
			zap.String("event", e.EventName()),
			zap.Error(ctx.Err()),
		)
		return ctx.Err()
	}
}

func (b *Bus) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-b.queue:
			if !ok {
				return
			}
			b.fanout(ctx, e)
		}
	}
}

func (b *Bus) fanout(ctx context.Context, e domoutbox.Event) {
	name := e.EventName()

	b.mu.RLock()
	handlers := append([]domoutbox.Handler(nil), b.subs[name]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	// Handlers outlive the publishing request.
	ctx = context.WithoutCancel(ctx)

	sem := make(chan struct{}, fanoutCap)
	var wg sync.WaitGroup

	for _, h := range handlers {
		h := h
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("event_handler_panic",
						zap.String("event", name),
						zap.Any("panic", r),
						zap.String("stack", string(debug.Stack())),
					)
				}
				<-sem
				wg.Done()
			}()

			hCtx, cancel := context.WithTimeout(ctx, handlerTimeout)
			err := h(hCtx, e)
			cancel()
			if err != nil {
				b.log.Warn("event_handler_error",
					zap.String("event", name),
					zap.Error(err),
				)
			}
		}()
	}

	wg.Wait()
}
