package models

// Links maps normalized item names to detail-page paths and remembers the
// order in which names were first seen.
//
// Setting an existing name replaces its path but keeps its position, so
// iteration always follows document order of first appearance.
type Links struct {
	entries []MenuLink
	index   map[string]int
}

// NewLinks creates an empty mapping
func NewLinks() *Links {
	return &Links{index: make(map[string]int)}
}

// Set inserts or overwrites the path stored under name
func (l *Links) Set(name, url string) {
	if i, ok := l.index[name]; ok {
		l.entries[i].URL = url
		return
	}
	l.index[name] = len(l.entries)
	l.entries = append(l.entries, MenuLink{Name: name, URL: url})
}

// Get returns the path stored under name
func (l *Links) Get(name string) (string, bool) {
	if l == nil {
		return "", false
	}
	i, ok := l.index[name]
	if !ok {
		return "", false
	}
	return l.entries[i].URL, true
}

// Len returns the number of distinct names
func (l *Links) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// All returns a copy of the entries in insertion order
func (l *Links) All() []MenuLink {
	if l == nil {
		return nil
	}
	out := make([]MenuLink, len(l.entries))
	copy(out, l.entries)
	return out
}

// Names returns the normalized names in insertion order
func (l *Links) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, len(l.entries))
	for i, e := range l.entries {
		names[i] = e.Name
	}
	return names
}
