// Package prefs persists the loading-screen preferences between runs.
package prefs

import (
	"encoding/json"
	"fmt"

	"ambient-portfolio/internal/utils"
)

const (
	Key = "portfolio-loading-preferences"
	// AutoSkipAfter is the number of visits after which the loading screen
	// is skipped without asking.
	AutoSkipAfter = 3
)

type Preferences struct {
	SkipLoadingScreen bool `json:"skipLoadingScreen"`
	ReducedAnimations bool `json:"reducedAnimations"`
	VisitCount        int  `json:"visitCount"`
}

func Defaults() Preferences {
	return Preferences{}
}

type Manager struct {
	store Store
	prefs Preferences
}

// Open reads the stored record, counts this visit and writes it back. A
// missing or unreadable record starts from defaults. When the system asks
// for reduced motion, animations are reduced for this run only.
func Open(store Store, systemReducedMotion bool) (*Manager, error) {
	m := &Manager{store: store, prefs: read(store)}

	m.prefs.VisitCount++
	if m.prefs.VisitCount > AutoSkipAfter {
		m.prefs.SkipLoadingScreen = true
	}
	if err := m.save(); err != nil {
		return m, err
	}

	if systemReducedMotion {
		m.prefs.ReducedAnimations = true
	}
	utils.Debug("Loaded preferences: visit %d, skip %t, reduced %t",
		m.prefs.VisitCount, m.prefs.SkipLoadingScreen, m.prefs.ReducedAnimations)
	return m, nil
}

// Peek reads the stored record without counting a visit.
func Peek(store Store) Preferences {
	return read(store)
}

func read(store Store) Preferences {
	p := Defaults()
	raw, ok, err := store.Get(Key)
	if err != nil {
		utils.Warn("Failed to read preferences: %v", err)
		return p
	}
	if !ok {
		return p
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		utils.Warn("Failed to parse preferences, using defaults: %v", err)
		return Defaults()
	}
	if p.VisitCount < 0 {
		p.VisitCount = 0
	}
	return p
}

func (m *Manager) Get() Preferences {
	return m.prefs
}

// Update applies fn and persists the result.
func (m *Manager) Update(fn func(*Preferences)) error {
	fn(&m.prefs)
	return m.save()
}

// Reset removes the stored record and returns to defaults.
func (m *Manager) Reset() error {
	m.prefs = Defaults()
	if err := m.store.Delete(Key); err != nil {
		return fmt.Errorf("failed to reset preferences: %w", err)
	}
	return nil
}

func (m *Manager) save() error {
	data, err := json.Marshal(m.prefs)
	if err != nil {
		return err
	}
	if err := m.store.Set(Key, string(data)); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
