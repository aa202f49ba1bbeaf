// internal/event/event.go
package event

// EventType — тип события
type EventType string

// Event — структура события
type Event struct {
	Type EventType
	Data interface{} // Данные события, если нужны
}

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(event Event)

// OnEvent calls f(event).
func (f ListenerFunc) OnEvent(event Event) { f(event) }

// Bus is what animations need to emit keyframe events.
type Bus interface {
	Dispatch(event Event)
}

// Dispatcher — диспетчер событий
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher — создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe — подписка на событие
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe — отписка от события. ListenerFunc так снять нельзя:
// функции не сравниваются, используйте тип-указатель.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch доставляет событие синхронно, в порядке подписки. Ключевой кадр
// анимации успевает обработаться целиком до следующего кадра или твина.
// Подписки, сделанные обработчиками во время доставки, действуют со
// следующего события.
func (d *Dispatcher) Dispatch(event Event) {
	listeners := d.listeners[event.Type]
	if len(listeners) == 0 {
		return
	}
	snapshot := make([]Listener, len(listeners))
	copy(snapshot, listeners)
	for _, listener := range snapshot {
		listener.OnEvent(event)
	}
}
