// Package registry provides a global registry of runner modes.
// Modes register themselves in init() functions, allowing the platform
// to list and select them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Mode describes one selectable game mode: its identity and the scene
// sequence cycled through during a run. Visual skinning of a mode lives in
// the renderer, not here.
type Mode struct {
	// ID is a unique identifier for this mode (e.g., "reef").
	// Used for CLI flags and log fields.
	ID string

	// Title is a human-readable name for display (e.g., "Reef Run").
	Title string

	// Scenes lists the scene names in the order they are visited.
	// The sequence wraps around after the last scene.
	Scenes []string
}

// Scene returns the scene name after the given number of scene changes.
func (m Mode) Scene(changes int) string {
	if len(m.Scenes) == 0 {
		return ""
	}
	if changes < 0 {
		changes = 0
	}
	return m.Scenes[changes%len(m.Scenes)]
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if m.ID == "" {
		panic("registry: mode ID must not be empty")
	}
	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}

	m.Scenes = append([]string(nil), m.Scenes...)
	modes[m.ID] = m
}

// List returns all registered modes, sorted by ID.
func List() []Mode {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Mode, 0, len(modes))
	for _, m := range modes {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the mode registered under id.
// Returns an error if the mode ID is not registered.
func Lookup(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("registry: unknown mode %q", id)
	}
	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
