package notifier

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// receiveEvent - вспомогательная функция для чтения события с таймаутом
func receiveEvent(t *testing.T, ch <-chan Event) (Event, bool) {
	t.Helper()
	select {
	case event, ok := <-ch:
		return event, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}, false
	}
}

func TestSubscribe_EmitsConnected(t *testing.T) {
	bus := NewBus()
	ch, unsubscribe := bus.Subscribe("patient-1")
	defer unsubscribe()

	event, ok := receiveEvent(t, ch)
	require.True(t, ok)
	assert.Equal(t, EventConnected, event.Type)
}

func TestPublish_DeliversToSubscriber(t *testing.T) {
	bus := NewBus()
	ch, unsubscribe := bus.Subscribe("patient-1")
	defer unsubscribe()
	receiveEvent(t, ch) // connected

	bus.Publish("patient-1", Event{Type: EventStageStarted, Message: "stage 1"})

	event, ok := receiveEvent(t, ch)
	require.True(t, ok)
	assert.Equal(t, EventStageStarted, event.Type)
	assert.Equal(t, "stage 1", event.Message)
}

func TestPublish_NoSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus()

	done := make(chan struct{})
	go func() {
		bus.Publish("nobody-listens", Event{Type: EventStageStarted})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish without subscriber must not block")
	}
}

func TestPublish_DoesNotLeakBetweenChannels(t *testing.T) {
	bus := NewBus()
	chA, unsubA := bus.Subscribe("patient-a")
	defer unsubA()
	chB, unsubB := bus.Subscribe("patient-b")
	defer unsubB()
	receiveEvent(t, chA)
	receiveEvent(t, chB)

	bus.Publish("patient-a", Event{Type: EventAllRejected})

	event, _ := receiveEvent(t, chA)
	assert.Equal(t, EventAllRejected, event.Type)

	select {
	case event := <-chB:
		t.Fatalf("unexpected event on other channel: %v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClose_EndsStream(t *testing.T) {
	bus := NewBus()
	ch, unsubscribe := bus.Subscribe("patient-1")
	defer unsubscribe()
	receiveEvent(t, ch)

	bus.Close("patient-1")

	_, ok := receiveEvent(t, ch)
	assert.False(t, ok, "channel must be closed after Close")

	// Публикация после закрытия не должна паниковать
	bus.Publish("patient-1", Event{Type: EventStageStarted})
}

func TestUnsubscribe_DetachesListener(t *testing.T) {
	bus := NewBus()
	ch, unsubscribe := bus.Subscribe("patient-1")
	receiveEvent(t, ch)

	unsubscribe()
	// Повторная отписка безопасна
	unsubscribe()

	_, ok := receiveEvent(t, ch)
	assert.False(t, ok)

	bus.Publish("patient-1", Event{Type: EventStageStarted})
}

func TestSubscribe_ReplacesPreviousSubscriber(t *testing.T) {
	bus := NewBus()
	first, unsubFirst := bus.Subscribe("hospital-1")
	receiveEvent(t, first)

	second, unsubSecond := bus.Subscribe("hospital-1")
	defer unsubSecond()
	receiveEvent(t, second)

	// Первый подписчик вытеснен и его поток закрыт
	_, ok := receiveEvent(t, first)
	assert.False(t, ok)

	bus.Publish("hospital-1", Event{Type: EventNewRequest})
	event, ok := receiveEvent(t, second)
	require.True(t, ok)
	assert.Equal(t, EventNewRequest, event.Type)

	// Отписка вытесненного подписчика не трогает нового
	unsubFirst()
	bus.Publish("hospital-1", Event{Type: EventNewRequest})
	_, ok = receiveEvent(t, second)
	assert.True(t, ok)
}

func TestChannelNames(t *testing.T) {
	id := uuid.MustParse("9b2e72e5-8a40-4f7e-9c1c-2f8a4e1b6c3d")
	assert.Equal(t, "patient-9b2e72e5-8a40-4f7e-9c1c-2f8a4e1b6c3d", ChannelForPatient(id))
	assert.Equal(t, "hospital-9b2e72e5-8a40-4f7e-9c1c-2f8a4e1b6c3d", ChannelForHospital(id))
}
