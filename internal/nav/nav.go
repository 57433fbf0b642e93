package nav

import "sync"

type Page string

const (
	PageIndex    Page = "index"
	PageLogin    Page = "login"
	PageRegister Page = "register"
)

// Navigator is the blocking alert plus hard redirect a page controller uses
// to leave the current page.
type Navigator interface {
	Alert(msg string)
	Redirect(p Page)
}

// Recorder keeps every alert and redirect in order.
type Recorder struct {
	mu        sync.Mutex
	alerts    []string
	redirects []Page
}

func (r *Recorder) Alert(msg string) {
	r.mu.Lock()
	r.alerts = append(r.alerts, msg)
	r.mu.Unlock()
}

func (r *Recorder) Redirect(p Page) {
	r.mu.Lock()
	r.redirects = append(r.redirects, p)
	r.mu.Unlock()
}

func (r *Recorder) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.alerts...)
}

func (r *Recorder) Redirects() []Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Page(nil), r.redirects...)
}

// Next pops the latest redirect target, if any, and forgets older ones.
func (r *Recorder) Next() (Page, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.redirects) == 0 {
		return "", false
	}
	p := r.redirects[len(r.redirects)-1]
	r.redirects = r.redirects[:0]
	return p, true
}
