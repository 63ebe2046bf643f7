package inventory

import (
	"errors"
	"slices"
	"testing"
)

func TestAddRemoveWood(t *testing.T) {
	inv := New()

	inv.Add("wood")
	inv.Add("wood")
	if got := inv.Count("wood"); got != 2 {
		t.Fatalf("Count(wood) = %d, expected 2", got)
	}

	for i := 0; i < 2; i++ {
		if err := inv.Remove("wood"); err != nil {
			t.Fatalf("remove #%d: %v", i+1, err)
		}
	}
	if got := inv.Count("wood"); got != 0 {
		t.Errorf("Count(wood) = %d, expected 0", got)
	}
	if inv.Len() != 0 || len(inv.Stacks()) != 0 {
		t.Error("entry should be absent after the last unit is removed")
	}

	if err := inv.Remove("wood"); !errors.Is(err, ErrEmptySlot) {
		t.Errorf("third Remove error = %v, expected ErrEmptySlot", err)
	}
	if inv.Count("wood") < 0 {
		t.Error("count must never go negative")
	}
}

func TestSelection(t *testing.T) {
	inv := New()
	if _, ok := inv.Selected(); ok {
		t.Error("empty inventory should have no selection")
	}

	inv.Add("stone")
	inv.Add("dirt")
	if kind, ok := inv.Selected(); !ok || kind != "stone" {
		t.Errorf("Selected() = %q, %v; first added kind should be selected", kind, ok)
	}

	if err := inv.Select("dirt"); err != nil {
		t.Fatal(err)
	}
	if err := inv.Select("gold"); !errors.Is(err, ErrEmptySlot) {
		t.Errorf("Select(gold) error = %v", err)
	}
	if kind, _ := inv.Selected(); kind != "dirt" {
		t.Errorf("Selected() = %q, expected dirt", kind)
	}

	_ = inv.Remove("dirt")
	if kind, ok := inv.Selected(); ok || kind != "dirt" {
		t.Errorf("Selected() = %q, %v; exhausted slot should keep its name but report empty", kind, ok)
	}
	inv.Add("dirt")
	if _, ok := inv.Selected(); !ok {
		t.Error("refilled slot should be selectable again")
	}
}

func TestCycle(t *testing.T) {
	inv := New()
	for _, k := range []string{"wood", "cobble", "ground"} {
		inv.Add(k)
	}
	// held: cobble, ground, wood; selected: wood

	tests := []struct {
		step     int
		expected string
	}{
		{1, "cobble"},
		{1, "ground"},
		{-1, "cobble"},
		{-1, "wood"},
		{3, "wood"},
		{5, "ground"},
	}
	for i, tc := range tests {
		inv.Cycle(tc.step)
		if kind, _ := inv.Selected(); kind != tc.expected {
			t.Fatalf("step %d: Cycle(%d) selected %q, expected %q", i, tc.step, kind, tc.expected)
		}
	}
}

func TestCycleFromExhaustedSlot(t *testing.T) {
	inv := New()
	inv.Add("a")
	inv.Add("c")
	inv.Add("b")
	_ = inv.Select("b")
	_ = inv.Remove("b")

	inv.Cycle(1)
	if kind, _ := inv.Selected(); kind != "c" {
		t.Errorf("Cycle(1) from gone slot = %q, expected c", kind)
	}

	_ = inv.Select("c")
	_ = inv.Remove("c")
	inv.Cycle(1)
	if kind, _ := inv.Selected(); kind != "a" {
		t.Errorf("Cycle(1) past the end = %q, expected a", kind)
	}

	empty := New()
	empty.Cycle(1) // must not panic
}

func TestStacksSorted(t *testing.T) {
	inv := New()
	inv.AddN("wood", 3)
	inv.AddN("cobble", 2)
	inv.AddN("ignored", 0)

	expected := []Stack{{"cobble", 2}, {"wood", 3}}
	if got := inv.Stacks(); !slices.Equal(got, expected) {
		t.Errorf("Stacks() = %v, expected %v", got, expected)
	}
}
