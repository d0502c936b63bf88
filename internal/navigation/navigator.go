package navigation

import (
	"net/url"
	"sync"
)

// Recorder tracks the current location and the navigations requested by the
// session layer. The CLI points OnNavigate at the system browser; tests
// leave it nil and inspect History.
type Recorder struct {
	mu      sync.Mutex
	current *url.URL
	history []string

	// OnNavigate, when set, is invoked for every full navigation.
	OnNavigate func(target string)
}

// NewRecorder creates a recorder positioned at the given location.
func NewRecorder(current string) *Recorder {
	u, err := url.Parse(current)
	if err != nil {
		u = &url.URL{Path: "/"}
	}

	return &Recorder{current: u}
}

// Current returns the current location.
func (r *Recorder) Current() *url.URL {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *r.current

	return &copied
}

// Navigate performs a full navigation to target.
func (r *Recorder) Navigate(target string) {
	r.mu.Lock()

	if u, err := url.Parse(target); err == nil {
		r.current = u
	}

	r.history = append(r.history, target)
	callback := r.OnNavigate
	r.mu.Unlock()

	if callback != nil {
		callback(target)
	}
}

// ReplaceLocation rewrites the visible location without recording a
// navigation, e.g. to strip an authorization code from the URL.
func (r *Recorder) ReplaceLocation(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, err := url.Parse(target); err == nil {
		r.current = u
	}
}

// SetLocation positions the recorder, e.g. at the callback URL the provider
// redirected to.
func (r *Recorder) SetLocation(target string) {
	r.ReplaceLocation(target)
}

// History returns every full navigation in order.
func (r *Recorder) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.history...)
}
