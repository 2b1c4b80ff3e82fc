// Package registry provides a global registry for policy factories.
// Policies register themselves in init() functions, allowing the runner
// and CLI to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/rl2048/internal/t2048"
)

// Policy chooses moves for an episode.
// Policies must not keep a reference to the board they are given.
type Policy interface {
	// ID returns a unique identifier for this policy (e.g., "random", "greedy").
	// Used for CLI commands and episode storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Choose returns the direction to play on the given board.
	// rng is owned by the calling episode and may be used for tie-breaking.
	Choose(board t2048.Board, rng *rand.Rand) t2048.Direction
}

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a policy.
type Factory func() Policy

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a policy factory to the registry.
// Typically called from a policy's init() function.
// Panics if a policy with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: policy %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	p := f()
	titles[id] = p.Title()
}

// List returns information about all registered policies, sorted by ID.
func List() []PolicyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PolicyInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PolicyInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new policy by its ID.
// Returns an error if the policy ID is not registered.
func Create(id string) (Policy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown policy %q", id)
	}

	return f(), nil
}

// Exists checks if a policy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
