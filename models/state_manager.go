package models

import "sync"

// StateManager holds the current meal for concurrent readers. There is at
// most one current meal; updating with nil clears the slot.
type StateManager struct {
	mu      sync.RWMutex
	current *Meal
}

func (s *StateManager) UpdateMeal(meal *Meal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if meal == nil {
		s.current = nil
		return
	}
	m := *meal
	s.current = &m
}

// CurrentMeal returns a copy of the current meal, or false if none is held.
func (s *StateManager) CurrentMeal() (Meal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Meal{}, false
	}
	return *s.current, true
}
