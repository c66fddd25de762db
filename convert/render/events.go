package render

// EventType tells what an Event carries.
type EventType string

const (
	// page size, always the first event
	EventMetadata EventType = "metadata"
	// rendered markup of a single slide
	EventSlide    EventType = "slide"
	EventProgress EventType = "progress"
	// global stylesheet with interned run styles, right before EventDone
	EventStyles EventType = "styles"
	EventDone   EventType = "done"
	// terminal, carries the cause, nothing follows it
	EventFailure EventType = "failure"
	EventInfo    EventType = "info"
	EventWarning EventType = "warning"
)

// Event is a single item of the ordered render output.
type Event struct {
	Type EventType `json:"type"`
	// one based slide number
	Slide  int    `json:"slide,omitempty"`
	Markup string `json:"markup,omitempty"`
	// percent of slides completed
	Progress float64 `json:"progress,omitempty"`
	// page size in CSS pixels
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	ElapsedMS int64   `json:"elapsed_ms,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// Terminal reports events after which no other events are emitted.
func (e *Event) Terminal() bool {
	return e.Type == EventDone || e.Type == EventFailure
}

// Sink consumes render events in order. Error returned by Emit aborts the
// render.
type Sink interface {
	Emit(ev *Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev *Event) error

func (f SinkFunc) Emit(ev *Event) error {
	return f(ev)
}

// Collector is a Sink keeping all events in memory.
type Collector struct {
	Events []Event
}

func (c *Collector) Emit(ev *Event) error {
	c.Events = append(c.Events, *ev)
	return nil
}

// OfType returns collected events of the given type.
func (c *Collector) OfType(t EventType) []Event {
	var res []Event
	for _, ev := range c.Events {
		if ev.Type == t {
			res = append(res, ev)
		}
	}
	return res
}
