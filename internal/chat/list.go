package chat

import (
	"sync"

	"github.com/suPer8Hu/gopherchat/internal/api"
	"github.com/suPer8Hu/gopherchat/internal/common"
)

// List is the ordered message state behind the view.
type List struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[string]int
}

func NewList() *List {
	return &List{index: make(map[string]int)}
}

func (l *List) Append(m api.Message, status Status) (Entry, error) {
	id, err := common.NewULID()
	if err != nil {
		return Entry{}, err
	}
	e := Entry{ID: id, Message: m, Status: status}

	l.mu.Lock()
	l.index[id] = len(l.entries)
	l.entries = append(l.entries, e)
	l.mu.Unlock()
	return e, nil
}

func (l *List) SetStatus(id string, status Status) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[id]
	if !ok {
		return Entry{}, false
	}
	l.entries[i].Status = status
	return l.entries[i], true
}

func (l *List) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Reset drops everything; used before a history reload.
func (l *List) Reset() {
	l.mu.Lock()
	l.entries = nil
	l.index = make(map[string]int)
	l.mu.Unlock()
}
