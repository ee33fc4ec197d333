package grid

// Collection is an ordered set of objects. Index 0 is drawn first (bottom),
// the last index is topmost. Methods never modify the receiver; mutations
// return a new collection so earlier values stay valid as snapshots.
type Collection []Object

// Clone deep-copies every object, including its lines.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, obj := range c {
		out[i] = obj.Clone()
	}
	return out
}

func (c Collection) Equal(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !c[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (c Collection) IndexOf(id string) int {
	for i, obj := range c {
		if obj.ID == id {
			return i
		}
	}
	return -1
}

func (c Collection) Find(id string) (Object, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c[i], true
	}
	return Object{}, false
}

// Append places obj on top of the stack.
func (c Collection) Append(obj Object) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, c...)
	return append(out, obj)
}

// Remove drops the object with the given id. Unknown ids return c unchanged.
func (c Collection) Remove(id string) Collection {
	i := c.IndexOf(id)
	if i < 0 {
		return c
	}
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...)
}

// Update replaces the object with the given id by fn(object).
func (c Collection) Update(id string, fn func(Object) Object) Collection {
	i := c.IndexOf(id)
	if i < 0 {
		return c
	}
	out := make(Collection, len(c))
	copy(out, c)
	out[i] = fn(c[i].Clone())
	return out
}

// MoveTo positions an object, clamping to the non-negative quadrant.
func (c Collection) MoveTo(id string, x, y int) Collection {
	return c.Update(id, func(o Object) Object {
		o.X = max(0, x)
		o.Y = max(0, y)
		return o
	})
}

func (c Collection) SetData(id string, data Content) Collection {
	return c.Update(id, func(o Object) Object {
		o.Data = data.Clone()
		return o
	})
}

// BringToFront moves an object to the top of the stack (remove + append).
func (c Collection) BringToFront(id string) Collection {
	obj, ok := c.Find(id)
	if !ok {
		return c
	}
	return c.Remove(id).Append(obj)
}

// SendToBack moves an object to the bottom of the stack (remove + prepend).
func (c Collection) SendToBack(id string) Collection {
	obj, ok := c.Find(id)
	if !ok {
		return c
	}
	rest := c.Remove(id)
	out := make(Collection, 0, len(c))
	out = append(out, obj)
	return append(out, rest...)
}

// Raise moves an object one step up the stack. The topmost object stays put.
func (c Collection) Raise(id string) Collection {
	return c.shift(id, 1)
}

// Lower moves an object one step down the stack.
func (c Collection) Lower(id string) Collection {
	return c.shift(id, -1)
}

func (c Collection) shift(id string, delta int) Collection {
	i := c.IndexOf(id)
	j := i + delta
	if i < 0 || j < 0 || j >= len(c) {
		return c
	}
	obj := c[i]
	rest := c.Remove(id)
	out := make(Collection, 0, len(c))
	out = append(out, rest[:j]...)
	out = append(out, obj)
	return append(out, rest[j:]...)
}

// Filter keeps objects for which keep returns true, preserving order.
func (c Collection) Filter(keep func(Object) bool) Collection {
	out := make(Collection, 0, len(c))
	for _, obj := range c {
		if keep(obj) {
			out = append(out, obj)
		}
	}
	return out
}
