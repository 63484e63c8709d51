package widgets

import "fmt"

// Slider is a minimal in-process numeric control. It exposes the Watch
// subscription shape: callbacks registered with Watch fire synchronously on
// the goroutine that calls Set.
type Slider struct {
	min, max float64
	value    float64
	watchers []func(message any)
}

// NewSlider creates a slider clamped to [min, max], starting at value.
func NewSlider(min, max, value float64) *Slider {
	s := &Slider{min: min, max: max}
	s.value = s.clamp(value)
	return s
}

// Value returns the slider's current value.
func (s *Slider) Value() any { return s.value }

// Watch registers a change callback.
func (s *Slider) Watch(fn func(message any)) {
	s.watchers = append(s.watchers, fn)
}

// Set moves the slider and fires the registered callbacks with the new
// value. Values outside the slider's range are clamped.
func (s *Slider) Set(v float64) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	s.value = v
	for _, fn := range s.watchers {
		fn(v)
	}
}

func (s *Slider) clamp(v float64) float64 {
	if v < s.min {
		return s.min
	}
	if v > s.max {
		return s.max
	}
	return v
}

func (s *Slider) String() string {
	return fmt.Sprintf("Slider(%g..%g)=%g", s.min, s.max, s.value)
}
