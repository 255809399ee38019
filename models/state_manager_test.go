package models

import "testing"

func TestStateManagerReplacesAndClears(t *testing.T) {
	sm := &StateManager{}
	if _, ok := sm.CurrentMeal(); ok {
		t.Fatalf("expected empty slot on a fresh manager")
	}

	first := &Meal{ID: "52772", Name: "Teriyaki Chicken Casserole"}
	sm.UpdateMeal(first)
	got, ok := sm.CurrentMeal()
	if !ok || got.ID != "52772" {
		t.Fatalf("expected first meal, got %+v (ok=%v)", got, ok)
	}

	// Mutating the caller's value must not leak into the slot.
	first.Name = "changed"
	if got, _ := sm.CurrentMeal(); got.Name != "Teriyaki Chicken Casserole" {
		t.Fatalf("slot aliased caller value: %q", got.Name)
	}

	sm.UpdateMeal(&Meal{ID: "52854", Name: "Pasta Carbonara"})
	if got, _ := sm.CurrentMeal(); got.ID != "52854" {
		t.Fatalf("expected replacement meal, got %+v", got)
	}

	sm.UpdateMeal(nil)
	if _, ok := sm.CurrentMeal(); ok {
		t.Fatalf("expected nil update to clear the slot")
	}
}
