// Package sorting implements the visualized sorting algorithms.
//
// Each algorithm is a generator over a dataset: it mutates the dataset through
// its compare/swap/overwrite primitives and yields a stepper.Step after every
// unit of visible work. The caller ranges over the sequence and decides how
// long to pause at each step; breaking out of the range abandons the sort at
// that step. Algorithms keep all working state local to the call, so a Func
// can be run any number of times.
package sorting

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/thruflo/sortviz/internal/dataset"
	"github.com/thruflo/sortviz/internal/stepper"
)

// ErrUnknownAlgorithm is returned by Lookup for a name with no registration.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Func sorts d ascending, yielding a step after each unit of visible work.
type Func func(d *dataset.Dataset) iter.Seq[stepper.Step]

// Algorithm is a registered sorting algorithm.
type Algorithm struct {
	Key   string // short name used on the command line and in config
	Title string // display name
	Sort  Func
}

// Registry maps algorithm names to implementations.
type Registry struct {
	mu    sync.RWMutex
	order []string
	algs  map[string]Algorithm
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{algs: make(map[string]Algorithm)}
}

// Register adds alg. Keys are matched case-insensitively and must be unique.
func (r *Registry) Register(alg Algorithm) error {
	if alg.Key == "" || alg.Sort == nil {
		return fmt.Errorf("algorithm %q: key and sort func are required", alg.Title)
	}
	if alg.Title == "" {
		alg.Title = alg.Key
	}

	key := normalize(alg.Key)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.algs[key]; exists {
		return fmt.Errorf("algorithm %q already registered", alg.Key)
	}
	r.algs[key] = alg
	r.order = append(r.order, key)
	return nil
}

// Lookup resolves name by key or by title, ignoring case and surrounding
// whitespace.
func (r *Registry) Lookup(name string) (Algorithm, error) {
	want := normalize(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if alg, ok := r.algs[want]; ok {
		return alg, nil
	}
	for _, key := range r.order {
		if normalize(r.algs[key].Title) == want {
			return r.algs[key], nil
		}
	}
	return Algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Names returns the registered keys in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order))
	for _, key := range r.order {
		names = append(names, r.algs[key].Key)
	}
	return names
}

// All returns the registered algorithms in registration order.
func (r *Registry) All() []Algorithm {
	r.mu.RLock()
	defer r.mu.RUnlock()

	algs := make([]Algorithm, 0, len(r.order))
	for _, key := range r.order {
		algs = append(algs, r.algs[key])
	}
	return algs
}

// Next returns the key registered after name, wrapping around. An unknown
// name yields the first key. Negative delta steps backwards.
func (r *Registry) Next(name string, delta int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return ""
	}

	idx := -1
	want := normalize(name)
	for i, key := range r.order {
		if key == want || normalize(r.algs[key].Title) == want {
			idx = i
			break
		}
	}
	if idx < 0 {
		return r.algs[r.order[0]].Key
	}

	n := len(r.order)
	next := ((idx+delta)%n + n) % n
	return r.algs[r.order[next]].Key
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry holding the built-in algorithms.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, alg := range Builtin() {
			if err := defaultRegistry.Register(alg); err != nil {
				panic(err)
			}
		}
	})
	return defaultRegistry
}

// Builtin returns the built-in algorithms in menu order.
func Builtin() []Algorithm {
	return []Algorithm{
		{Key: "bubble", Title: "Bubble Sort", Sort: Bubble},
		{Key: "cocktail", Title: "Cocktail Shaker Sort", Sort: Cocktail},
		{Key: "insertion", Title: "Insertion Sort", Sort: Insertion},
		{Key: "selection", Title: "Selection Sort", Sort: Selection},
		{Key: "heap", Title: "Heap Sort", Sort: Heap},
		{Key: "merge", Title: "Merge Sort", Sort: Merge},
	}
}
