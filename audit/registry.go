package audit

import (
	"sync"

	"github.com/google/uuid"
	"github.com/robinvdvleuten/saft/ast"
)

// Registry collects the entries recorded during validation. Entries are keyed by
// entity identity and a given (entity, code) pair is recorded at most once, so
// validating the same tree twice against one registry yields the same entries.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	id       uuid.UUID
	order    []ast.Node
	entities map[ast.Node][]*Entry
	errors   int
	warnings int
}

// NewRegistry creates an empty registry with a fresh pass id.
func NewRegistry() *Registry {
	return &Registry{
		id:       uuid.New(),
		entities: make(map[ast.Node][]*Entry),
	}
}

// ID identifies the registry in logs and reports.
func (r *Registry) ID() uuid.UUID {
	return r.id
}

// Report records an entry. It returns false when the entity already carries an
// entry with the same code, in which case nothing is recorded.
func (r *Registry) Report(entry *Entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, seen := r.entities[entry.Entity]
	for _, existing := range entries {
		if existing.Code == entry.Code {
			return false
		}
	}

	if !seen {
		r.order = append(r.order, entry.Entity)
	}

	// Keep per-entity entries sorted by code rank.
	rank := entry.Code.Rank()
	i := len(entries)
	for i > 0 && entries[i-1].Code.Rank() > rank {
		i--
	}
	entries = append(entries, nil)
	copy(entries[i+1:], entries[i:])
	entries[i] = entry
	r.entities[entry.Entity] = entries

	if entry.Severity == SeverityWarning {
		r.warnings++
	} else {
		r.errors++
	}

	return true
}

// HasErrors reports whether any entity carries an error. Warnings are ignored.
func (r *Registry) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors > 0
}

// Len returns the number of recorded errors and warnings.
func (r *Registry) Len() (errors, warnings int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors, r.warnings
}

// EntriesFor returns all entries of an entity in rank order.
func (r *Registry) EntriesFor(entity ast.Node) []*Entry {
	return r.filterFor(entity, func(*Entry) bool { return true })
}

// ErrorsFor returns the errors of an entity in rank order.
func (r *Registry) ErrorsFor(entity ast.Node) []*Entry {
	return r.filterFor(entity, func(e *Entry) bool { return !e.IsWarning() })
}

// WarningsFor returns the warnings of an entity in rank order.
func (r *Registry) WarningsFor(entity ast.Node) []*Entry {
	return r.filterFor(entity, (*Entry).IsWarning)
}

// Entries returns every entry, grouped by entity in the order entities were
// first reported and by rank within an entity.
func (r *Registry) Entries() []*Entry {
	return r.filter(func(*Entry) bool { return true })
}

// Errors returns every error in the order of Entries.
func (r *Registry) Errors() []*Entry {
	return r.filter(func(e *Entry) bool { return !e.IsWarning() })
}

// Warnings returns every warning in the order of Entries.
func (r *Registry) Warnings() []*Entry {
	return r.filter((*Entry).IsWarning)
}

func (r *Registry) filterFor(entity ast.Node, keep func(*Entry) bool) []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Entry
	for _, e := range r.entities[entity] {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

func (r *Registry) filter(keep func(*Entry) bool) []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Entry
	for _, entity := range r.order {
		for _, e := range r.entities[entity] {
			if keep(e) {
				result = append(result, e)
			}
		}
	}
	return result
}
