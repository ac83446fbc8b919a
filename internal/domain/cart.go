package domain

// Cart is an ordered selection of menu items. The methods never mutate the
// receiver's backing array; they return the updated cart.
type Cart []CartItem

func (c Cart) index(id string) int {
	for i, entry := range c {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

// Add merges qty into the entry for item.ID, or appends a new entry.
// Non-positive quantities leave the cart unchanged.
func (c Cart) Add(item MenuItem, qty int) Cart {
	if qty <= 0 {
		return c
	}
	out := c.clone()
	if i := out.index(item.ID); i >= 0 {
		out[i].Quantity += qty
		return out
	}
	return append(out, CartItem{MenuItem: item, Quantity: qty})
}

func (c Cart) Remove(id string) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	out := make(Cart, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...)
}

// SetQuantity sets an absolute quantity; qty <= 0 removes the entry.
func (c Cart) SetQuantity(id string, qty int) Cart {
	if qty <= 0 {
		return c.Remove(id)
	}
	i := c.index(id)
	if i < 0 {
		return c
	}
	out := c.clone()
	out[i].Quantity = qty
	return out
}

// Adjust applies a relative change. A result below 1 is ignored.
func (c Cart) Adjust(id string, delta int) Cart {
	i := c.index(id)
	if i < 0 || c[i].Quantity+delta < 1 {
		return c
	}
	out := c.clone()
	out[i].Quantity += delta
	return out
}

func (c Cart) SetNotes(id, notes string) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	out := c.clone()
	out[i].Notes = notes
	return out
}

func (c Cart) Find(id string) (CartItem, bool) {
	if i := c.index(id); i >= 0 {
		return c[i], true
	}
	return CartItem{}, false
}

func (c Cart) Count() int {
	n := 0
	for _, entry := range c {
		n += entry.Quantity
	}
	return n
}

// Snapshot returns an independent copy suitable for storing on an order.
func (c Cart) Snapshot() []CartItem {
	out := make([]CartItem, len(c))
	copy(out, c)
	return out
}

func (c Cart) clone() Cart {
	out := make(Cart, len(c), len(c)+1)
	copy(out, c)
	return out
}
