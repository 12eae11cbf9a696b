package astro

import "fmt"

// Warnings collects non-fatal range warnings raised during a computation.
// Callers that care pass a *Warnings down the call chain and inspect it
// afterwards; a nil receiver discards everything, so purely numerical
// callers can pass nil.
type Warnings struct {
	msgs []string
}

// Addf records a formatted warning. Safe on a nil receiver.
func (w *Warnings) Addf(format string, args ...any) {
	if w == nil {
		return
	}
	w.msgs = append(w.msgs, fmt.Sprintf(format, args...))
}

// Messages returns the recorded warnings in order of occurrence.
func (w *Warnings) Messages() []string {
	if w == nil {
		return nil
	}
	return w.msgs
}

// Empty reports whether no warnings were recorded.
func (w *Warnings) Empty() bool {
	return w == nil || len(w.msgs) == 0
}
