package config

import (
	"slices"
	"sync"

	"ethos/motion"
)

// Section names a part of the configuration listeners can subscribe to.
type Section string

const (
	SectionAnimation Section = "animation"
	SectionDrag      Section = "drag"
	SectionHost      Section = "host"
)

// Sections lists every section in update order.
var Sections = []Section{SectionAnimation, SectionDrag, SectionHost}

// Listeners dispatches configuration updates to registered callbacks.
// The zero value is ready to use.
type Listeners struct {
	mu  sync.Mutex
	fns map[Section][]func(Config)
}

// Register adds fn to the listeners for section.
func (l *Listeners) Register(section Section, fn func(Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[Section][]func(Config))
	}
	l.fns[section] = append(l.fns[section], fn)
}

// Update calls every listener for section with c, in registration order, and
// returns how many ran. Updating a section nobody registered logs a warning.
func (l *Listeners) Update(section Section, c Config) int {
	l.mu.Lock()
	fns := slices.Clone(l.fns[section])
	l.mu.Unlock()

	if len(fns) == 0 {
		motion.Logger().Warn("config: update for unregistered section", "section", string(section))
		return 0
	}
	for _, fn := range fns {
		fn(c)
	}
	return len(fns)
}

// UpdateAll updates every section that has listeners.
func (l *Listeners) UpdateAll(c Config) int {
	l.mu.Lock()
	var present []Section
	for _, s := range Sections {
		if len(l.fns[s]) > 0 {
			present = append(present, s)
		}
	}
	l.mu.Unlock()

	n := 0
	for _, s := range present {
		n += l.Update(s, c)
	}
	return n
}
