package compose

// EventKind identifies the events a window dispatches to observers.
type EventKind int

const (
	KeyPress EventKind = iota
	RenderEvent
	CloseEvent
	SliderChanged
)

func (k EventKind) String() string {
	switch k {
	case KeyPress:
		return "KeyPress"
	case RenderEvent:
		return "Render"
	case CloseEvent:
		return "Close"
	case SliderChanged:
		return "SliderChanged"
	}
	return "Unknown"
}

// Event is passed to observers. Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind
	Key      string
	Renderer *Renderer
	Slider   *Slider
	Value    float64
}

// Observer is a registered callback. Callbacks run on the UI thread.
type Observer struct {
	ID   int
	Kind EventKind
	Fn   func(Event)

	owner Widget
}

type observers struct {
	next int
	list []Observer
}

func (o *observers) add(kind EventKind, owner Widget, fn func(Event)) int {
	o.next++
	o.list = append(o.list, Observer{ID: o.next, Kind: kind, Fn: fn, owner: owner})
	return o.next
}

func (o *observers) remove(id int) bool {
	for i, ob := range o.list {
		if ob.ID == id {
			o.list = append(o.list[:i], o.list[i+1:]...)
			return true
		}
	}
	return false
}

// removeOwned drops every observer registered by a widget.
func (o *observers) removeOwned() int {
	kept := o.list[:0]
	n := 0
	for _, ob := range o.list {
		if ob.owner != nil {
			n++
			continue
		}
		kept = append(kept, ob)
	}
	o.list = kept
	return n
}

func (o *observers) count(kind EventKind) int {
	n := 0
	for _, ob := range o.list {
		if ob.Kind == kind {
			n++
		}
	}
	return n
}

// fire calls matching observers in registration order. The list is copied
// first so callbacks may add or remove observers.
func (o *observers) fire(ev Event) {
	list := append([]Observer(nil), o.list...)
	for _, ob := range list {
		if ob.Kind == ev.Kind {
			ob.Fn(ev)
		}
	}
}
