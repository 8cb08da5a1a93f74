package notifier

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// EventType - тип события, передаваемого по каналу уведомлений
type EventType string

const (
	EventConnected           EventType = "connected"
	EventStageStarted        EventType = "stage_started"
	EventNoCandidates        EventType = "no_candidates"
	EventNewRequest          EventType = "new_request"
	EventNoResponseExpanding EventType = "no_response_expanding"
	EventHospitalNoAnswer    EventType = "hospital_no_answer"
	EventHospitalRejected    EventType = "hospital_rejected"
	EventAllRejected         EventType = "all_rejected"
	EventHospitalAccepted    EventType = "hospital_accepted"
	EventMatchingError       EventType = "matching_error"
)

// Event - одно событие в именованном канале уведомлений
type Event struct {
	Type    EventType      `json:"type"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// ChannelForPatient возвращает имя канала уведомлений пациента
func ChannelForPatient(id uuid.UUID) string {
	return fmt.Sprintf("patient-%s", id)
}

// ChannelForHospital возвращает имя канала уведомлений больницы
func ChannelForHospital(id uuid.UUID) string {
	return fmt.Sprintf("hospital-%s", id)
}

const subscriberBuffer = 16

// Bus - in-memory шина уведомлений: один активный подписчик на канал,
// доставка без ожидания и без очереди для отключённых подписчиков
type Bus struct {
	mu   sync.Mutex
	subs map[string]chan Event
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[string]chan Event),
	}
}

// Subscribe регистрирует подписчика канала и сразу отправляет ему событие connected.
// Повторная подписка на тот же канал вытесняет предыдущего подписчика.
// Возвращённая функция отписывает только этого подписчика.
func (b *Bus) Subscribe(channel string) (<-chan Event, func()) {
	b.mu.Lock()
	if old, ok := b.subs[channel]; ok {
		close(old)
	}
	ch := make(chan Event, subscriberBuffer)
	b.subs[channel] = ch
	ch <- Event{Type: EventConnected, Message: "connected to " + channel}
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// Закрываем канал только если он всё ещё наш: канал мог быть
		// закрыт шиной или вытеснен новым подписчиком
		if cur, ok := b.subs[channel]; ok && cur == ch {
			delete(b.subs, channel)
			close(cur)
		}
	}
	return ch, unsubscribe
}

// Publish доставляет событие текущему подписчику канала, если он есть.
// Без подписчика или при переполненном буфере событие отбрасывается.
func (b *Bus) Publish(channel string, event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.subs[channel]
	if !ok {
		return
	}
	select {
	case ch <- event:
	default:
	}
}

// Close завершает поток подписчика (конец стрима, не ошибка) и удаляет канал
func (b *Bus) Close(channel string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[channel]; ok {
		delete(b.subs, channel)
		close(ch)
	}
}
