package scene

import "infinicity/internal/city"

type EventType int

const (
	EventGridReset EventType = iota
	EventRowRecycled
	EventScrolled
)

type Event struct {
	Type       EventType
	Transition city.Transition
	Boundary   int
	Shift      float64
	Delta      float64
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
