package cache

import "sync"

// IDList is an ordered id list with set semantics: an id appears at most
// once, inserts of a present id are no-ops. Used for the "active polls",
// "my polls", and per-company poll listings, where display order matters
// but duplicates must never appear.
type IDList struct {
	mu   sync.Mutex
	ids  []int64
	seen map[int64]struct{}
}

func NewIDList() *IDList {
	return &IDList{seen: make(map[int64]struct{})}
}

func (l *IDList) Prepend(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[id]; ok {
		return
	}
	l.seen[id] = struct{}{}
	l.ids = append([]int64{id}, l.ids...)
}

func (l *IDList) Append(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[id]; ok {
		return
	}
	l.seen[id] = struct{}{}
	l.ids = append(l.ids, id)
}

func (l *IDList) Remove(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[id]; !ok {
		return
	}
	delete(l.seen, id)
	for i, v := range l.ids {
		if v == id {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			break
		}
	}
}

// Replace swaps the whole list for ids, deduplicating while keeping the
// first occurrence's position.
func (l *IDList) Replace(ids []int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids = l.ids[:0]
	l.seen = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := l.seen[id]; ok {
			continue
		}
		l.seen[id] = struct{}{}
		l.ids = append(l.ids, id)
	}
}

func (l *IDList) Contains(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[id]
	return ok
}

// IDs returns a copy of the list in order.
func (l *IDList) IDs() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]int64, len(l.ids))
	copy(out, l.ids)
	return out
}

func (l *IDList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ids)
}
