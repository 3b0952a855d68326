package entity

// DefaultCapacity is the number of inventory slots a player has.
const DefaultCapacity = 15

// Slot is one stack of identical items. Count is always at least 1.
type Slot struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Inventory is a fixed-capacity ordered list of item stacks.
// Items with the same key share one slot with no stack limit.
type Inventory struct {
	slots    []Slot
	capacity int
}

// NewInventory creates an empty inventory. A non-positive capacity uses
// DefaultCapacity.
func NewInventory(capacity int) *Inventory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Inventory{capacity: capacity}
}

// Add stacks n units of key. A new key needs a free slot; Add returns false
// and changes nothing when none is left.
func (inv *Inventory) Add(key string, n int) bool {
	if key == "" || n <= 0 {
		return false
	}
	if i := inv.index(key); i >= 0 {
		inv.slots[i].Count += n
		return true
	}
	if len(inv.slots) >= inv.capacity {
		return false
	}
	inv.slots = append(inv.slots, Slot{Key: key, Count: n})
	return true
}

// Remove takes n units of key, dropping the slot when it empties. It returns
// false and changes nothing if fewer than n units are held.
func (inv *Inventory) Remove(key string, n int) bool {
	if n <= 0 {
		return false
	}
	i := inv.index(key)
	if i < 0 || inv.slots[i].Count < n {
		return false
	}
	inv.slots[i].Count -= n
	if inv.slots[i].Count == 0 {
		inv.slots = append(inv.slots[:i], inv.slots[i+1:]...)
	}
	return true
}

// Count returns how many units of key are held.
func (inv *Inventory) Count(key string) int {
	if i := inv.index(key); i >= 0 {
		return inv.slots[i].Count
	}
	return 0
}

// Has reports whether at least one unit of key is held.
func (inv *Inventory) Has(key string) bool {
	return inv.Count(key) > 0
}

// Slots returns a copy of the slots in order.
func (inv *Inventory) Slots() []Slot {
	out := make([]Slot, len(inv.slots))
	copy(out, inv.slots)
	return out
}

// Flatten lists one key per unit held, in slot order.
func (inv *Inventory) Flatten() []string {
	var keys []string
	for _, s := range inv.slots {
		for i := 0; i < s.Count; i++ {
			keys = append(keys, s.Key)
		}
	}
	return keys
}

// Len returns the number of occupied slots.
func (inv *Inventory) Len() int { return len(inv.slots) }

// Capacity returns the slot limit.
func (inv *Inventory) Capacity() int { return inv.capacity }

// IsFull reports whether every slot is occupied.
func (inv *Inventory) IsFull() bool { return len(inv.slots) >= inv.capacity }

// Clear removes every slot.
func (inv *Inventory) Clear() { inv.slots = nil }

func (inv *Inventory) index(key string) int {
	for i := range inv.slots {
		if inv.slots[i].Key == key {
			return i
		}
	}
	return -1
}
