package compose

import (
	"math"

	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/layout"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// Widget is an interactive 2D element owned by exactly one renderer.
// Widgets start disabled and are switched on by the first Render.
type Widget interface {
	Renderer() *Renderer
	Enabled() bool

	attach(r *Renderer) error
	enable(w *Window)
	disable()
}

type widgetBase struct {
	owner   *Renderer
	enabled bool
}

func (b *widgetBase) Renderer() *Renderer { return b.owner }
func (b *widgetBase) Enabled() bool       { return b.enabled }

func (b *widgetBase) attach(r *Renderer) error {
	if b.owner != nil && b.owner != r {
		return errors.New(errors.ErrCodeWidgetAttached, "widget already belongs to renderer %d", b.owner.Index)
	}
	b.owner = r
	return nil
}

func (b *widgetBase) enable(*Window) { b.enabled = true }
func (b *widgetBase) disable()       { b.enabled = false }

// TextWidget is a screen-anchored, non-selectable label.
type TextWidget struct {
	widgetBase
	Text string
	Box  layout.TextBox
	Prop scene.TextProperty
}

// NewTextWidget returns a label placed in box.
func NewTextWidget(text string, box layout.TextBox, prop scene.TextProperty) *TextWidget {
	return &TextWidget{Text: text, Box: box, Prop: prop}
}

// Selectable is always false: labels do not take input.
func (*TextWidget) Selectable() bool { return false }

// MarkerWidget shows an orientation marker that follows the renderer camera.
type MarkerWidget struct {
	widgetBase
	Marker scene.Marker
}

// ScalarBarWidget shows the mapping of a shared lookup table.
type ScalarBarWidget struct {
	widgetBase
	Bar scene.ScalarBar
}

// Slider adjusts one actor property. Apply runs on the UI thread whenever
// the value changes.
type Slider struct {
	widgetBase
	Title    string
	Min, Max float64
	Step     float64
	// IncKey and DecKey, when set, step the slider on key presses.
	IncKey, DecKey string
	Position       layout.Rect

	Actor *scene.Actor
	Apply func(a *scene.Actor, v float64)

	value     float64
	window    *Window
	observers []int
}

// NewSlider returns a slider over [lo, hi] starting at value.
func NewSlider(title string, a *scene.Actor, lo, hi, value float64, apply func(*scene.Actor, float64)) *Slider {
	s := &Slider{
		Title:    title,
		Min:      lo,
		Max:      hi,
		Step:     (hi - lo) / 20,
		Position: layout.Rect{XMin: 0.1, YMin: 0.9, XMax: 0.4, YMax: 0.97},
		Actor:    a,
		Apply:    apply,
	}
	s.value = s.clamp(value)
	return s
}

func (s *Slider) clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Value returns the current value.
func (s *Slider) Value() float64 { return s.value }

// SetValue clamps v to the slider range, applies it to the actor and
// notifies SliderChanged observers. Unchanged values are ignored.
func (s *Slider) SetValue(v float64) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	s.value = v
	if s.Apply != nil {
		s.Apply(s.Actor, v)
	}
	if s.window != nil {
		s.window.obs.fire(Event{Kind: SliderChanged, Renderer: s.owner, Slider: s, Value: v})
	}
}

func (s *Slider) enable(w *Window) {
	s.enabled = true
	s.window = w
	if s.IncKey == "" && s.DecKey == "" {
		return
	}
	id := w.obs.add(KeyPress, s, func(ev Event) {
		switch ev.Key {
		case s.IncKey:
			s.SetValue(s.value + s.Step)
		case s.DecKey:
			s.SetValue(s.value - s.Step)
		}
	})
	s.observers = append(s.observers, id)
}

func (s *Slider) disable() {
	s.enabled = false
	s.observers = nil
}

var (
	_ Widget = (*TextWidget)(nil)
	_ Widget = (*MarkerWidget)(nil)
	_ Widget = (*ScalarBarWidget)(nil)
	_ Widget = (*Slider)(nil)
)
