package notification

import (
	"context"
	"sync"
)

// Recorder keeps every toast it is given. Used in tests.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(ctx context.Context, toast Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Toast, len(r.toasts))
	copy(result, r.toasts)
	return result
}

func (r *Recorder) Count(status Status) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, t := range r.toasts {
		if t.Status == status {
			count++
		}
	}
	return count
}
