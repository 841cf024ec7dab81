// Package view holds the page models rendered by the HTML templates.
package view

// State is the lifecycle of a screen: it loads, then is ready or failed.
type State string

const (
	Loading State = "loading"
	Ready   State = "ready"
	Error   State = "error"
)

// Screen holds one independently loaded piece of page data.
type Screen[T any] struct {
	State State
	Data  T
	Err   error
}

// Load runs fetch and records its outcome. On failure Data stays at the zero
// value, so list screens render empty.
func Load[T any](fetch func() (T, error)) Screen[T] {
	data, err := fetch()
	if err != nil {
		var zero T
		return Screen[T]{State: Error, Data: zero, Err: err}
	}
	return Screen[T]{State: Ready, Data: data}
}

// Failed reports whether the load ended in the error state.
func (s Screen[T]) Failed() bool { return s.State == Error }
