package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSendTimeout возвращается, когда наблюдатель не принял событие за отведённое время.
var ErrSendTimeout = errors.New("observer send timeout")

// Observer — подключённый получатель событий.
type Observer interface {
	Send(event Event) error
	Close() error
}

// Hub владеет множеством наблюдателей и рассылает им доменные события.
// Рассылка best-effort: доставка не подтверждается, упавший наблюдатель
// выбрасывается из множества. Запись в БД к этому моменту уже закоммичена,
// поэтому сбой рассылки никогда не откатывает данные.
type Hub struct {
	mu          sync.RWMutex
	observers   map[Observer]struct{}
	sendTimeout time.Duration
	logger      *zap.Logger
	stopChan    chan struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		observers:   make(map[Observer]struct{}),
		sendTimeout: 2 * time.Second,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}
}

// Register добавляет наблюдателя. Вызывается после проверки токена.
func (h *Hub) Register(o Observer) {
	h.mu.Lock()
	h.observers[o] = struct{}{}
	total := len(h.observers)
	h.mu.Unlock()

	h.logger.Info("Observer connected", zap.Int("total_connections", total))
}

// Deregister убирает наблюдателя при штатном отключении
func (h *Hub) Deregister(o Observer) {
	h.mu.Lock()
	_, ok := h.observers[o]
	delete(h.observers, o)
	total := len(h.observers)
	h.mu.Unlock()

	if ok {
		h.logger.Info("Observer disconnected", zap.Int("total_connections", total))
	}
}

// Count возвращает число подключённых наблюдателей
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Broadcast рассылает событие всем подключённым наблюдателям.
// Неудачная отправка удаляет наблюдателя; повторов нет, событие теряется
// с предупреждением в логе.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	observers := make([]Observer, 0, len(h.observers))
	for o := range h.observers {
		observers = append(observers, o)
	}
	h.mu.RUnlock()

	for _, o := range observers {
		if err := h.send(o, event); err != nil {
			h.drop(o)
			h.logger.Warn("Failed to send event to observer, dropping it",
				zap.String("event_type", event.Type),
				zap.Error(err),
			)
		}
	}
}

// send выполняет отправку с таймаутом, чтобы зависший наблюдатель
// не блокировал рассылку остальным.
func (h *Hub) send(o Observer, event Event) error {
	done := make(chan error, 1)
	go func() {
		done <- o.Send(event)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(h.sendTimeout):
		return ErrSendTimeout
	}
}

// drop убирает наблюдателя и закрывает его соединение, чтобы зависшая
// горутина отправки завершилась ошибкой записи.
func (h *Hub) drop(o Observer) {
	h.mu.Lock()
	delete(h.observers, o)
	total := len(h.observers)
	h.mu.Unlock()

	_ = o.Close()
	h.logger.Warn("Observer removed after send failure", zap.Int("total_connections", total))
}

// Run запускает периодическую проверку наблюдателей. Пустое событие ping
// выявляет мёртвые соединения между доменными рассылками.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.Broadcast(Event{Type: "ping", Data: map[string]any{}})
		case <-h.stopChan:
			h.logger.Info("Hub sweep stopped")
			return
		case <-ctx.Done():
			h.logger.Info("Hub sweep cancelled")
			return
		}
	}
}

// Stop останавливает периодическую проверку
func (h *Hub) Stop() {
	close(h.stopChan)
}
