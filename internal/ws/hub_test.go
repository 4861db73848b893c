package ws

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeObserver записывает полученные события; может имитировать
// сбой или зависание отправки.
type fakeObserver struct {
	mu     sync.Mutex
	events []Event
	closed bool

	sendErr error
	hang    bool
}

func (f *fakeObserver) Send(event Event) error {
	if f.hang {
		time.Sleep(10 * time.Second)
		return nil
	}
	if f.sendErr != nil {
		return f.sendErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeObserver) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeObserver) received() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Event(nil), f.events...)
}

func TestHub_BroadcastFanOut(t *testing.T) {
	hub := NewHub(zap.NewNop())

	first := &fakeObserver{}
	second := &fakeObserver{}
	hub.Register(first)
	hub.Register(second)
	assert.Equal(t, 2, hub.Count())

	hub.Broadcast(Event{Type: "user_created", Data: map[string]any{"id": int64(1)}})

	assert.Len(t, first.received(), 1)
	assert.Len(t, second.received(), 1)
	assert.Equal(t, "user_created", first.received()[0].Type)
}

func TestHub_DropsFailingObserver(t *testing.T) {
	hub := NewHub(zap.NewNop())

	healthy := &fakeObserver{}
	broken := &fakeObserver{sendErr: errors.New("connection reset")}
	hub.Register(healthy)
	hub.Register(broken)

	hub.Broadcast(Event{Type: "session_created", Data: map[string]any{}})

	// Сломанный наблюдатель выброшен и закрыт, здоровый получил событие
	assert.Equal(t, 1, hub.Count())
	assert.True(t, broken.closed)
	assert.Len(t, healthy.received(), 1)

	// Последующие рассылки идут только оставшимся
	hub.Broadcast(Event{Type: "session_updated", Data: map[string]any{}})
	assert.Len(t, healthy.received(), 2)
	assert.Empty(t, broken.received())
}

func TestHub_SendTimeoutDropsObserver(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.sendTimeout = 50 * time.Millisecond

	stuck := &fakeObserver{hang: true}
	hub.Register(stuck)

	done := make(chan struct{})
	go func() {
		hub.Broadcast(Event{Type: "ping", Data: map[string]any{}})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a stuck observer")
	}

	assert.Equal(t, 0, hub.Count())
}

func TestHub_DeregisterIsIdempotent(t *testing.T) {
	hub := NewHub(zap.NewNop())

	observer := &fakeObserver{}
	hub.Register(observer)
	hub.Deregister(observer)
	hub.Deregister(observer)

	assert.Equal(t, 0, hub.Count())

	hub.Broadcast(Event{Type: "ping", Data: map[string]any{}})
	assert.Empty(t, observer.received())
}

func TestHub_ConcurrentRegisterBroadcast(t *testing.T) {
	hub := NewHub(zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			observer := &fakeObserver{}
			hub.Register(observer)
			hub.Deregister(observer)
		}()
		go func() {
			defer wg.Done()
			hub.Broadcast(Event{Type: "ping", Data: map[string]any{}})
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.Count())
}
