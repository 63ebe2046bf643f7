// Package inventory counts the item kinds a player carries.
package inventory

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptySlot is returned when removing a kind the inventory does not hold.
var ErrEmptySlot = errors.New("inventory: empty slot")

// Stack is one kind and how many units are held.
type Stack struct {
	Kind  string
	Count int
}

// Inventory maps kind names to positive quantities.
// A kind whose count drops to zero is removed.
type Inventory struct {
	counts   map[string]int
	selected string
}

// New creates an empty inventory.
func New() *Inventory {
	return &Inventory{counts: make(map[string]int)}
}

// Add stores one unit of kind. The first kind ever held becomes selected.
func (inv *Inventory) Add(kind string) {
	inv.AddN(kind, 1)
}

// AddN stores n units of kind. Non-positive n is ignored.
func (inv *Inventory) AddN(kind string, n int) {
	if n <= 0 || kind == "" {
		return
	}
	inv.counts[kind] += n
	if inv.selected == "" {
		inv.selected = kind
	}
}

// Remove takes one unit of kind.
func (inv *Inventory) Remove(kind string) error {
	n := inv.counts[kind]
	if n <= 0 {
		return fmt.Errorf("%w: %q", ErrEmptySlot, kind)
	}
	if n == 1 {
		delete(inv.counts, kind)
		return nil
	}
	inv.counts[kind] = n - 1
	return nil
}

// Count returns how many units of kind are held.
func (inv *Inventory) Count(kind string) int {
	return inv.counts[kind]
}

// Len returns the number of distinct kinds held.
func (inv *Inventory) Len() int {
	return len(inv.counts)
}

// Selected returns the kind chosen for building. The selection survives
// running out so the slot refills when the kind is picked up again;
// ok is false while nothing of it is held.
func (inv *Inventory) Selected() (string, bool) {
	if inv.selected == "" || inv.counts[inv.selected] == 0 {
		return inv.selected, false
	}
	return inv.selected, true
}

// Select chooses kind for building. Returns ErrEmptySlot if it is not held.
func (inv *Inventory) Select(kind string) error {
	if inv.counts[kind] == 0 {
		return fmt.Errorf("%w: %q", ErrEmptySlot, kind)
	}
	inv.selected = kind
	return nil
}

// Cycle moves the selection step positions through the held kinds in
// name order, wrapping around. It does nothing when the inventory is empty.
func (inv *Inventory) Cycle(step int) {
	names := inv.names()
	if len(names) == 0 {
		return
	}
	cur := sort.SearchStrings(names, inv.selected)
	if cur == len(names) || names[cur] != inv.selected {
		// Selection ran out: treat the insertion point as just before cur.
		if step > 0 {
			cur--
		}
	}
	n := len(names)
	next := ((cur+step)%n + n) % n
	inv.selected = names[next]
}

// Stacks returns the held kinds sorted by name.
func (inv *Inventory) Stacks() []Stack {
	names := inv.names()
	out := make([]Stack, len(names))
	for i, name := range names {
		out[i] = Stack{Kind: name, Count: inv.counts[name]}
	}
	return out
}

func (inv *Inventory) names() []string {
	names := make([]string, 0, len(inv.counts))
	for name := range inv.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
