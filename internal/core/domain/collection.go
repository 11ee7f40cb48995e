package domain

// HabitCollection exclusively owns every habit, active and archived,
// indexed by id. Insertion order is kept for display.
type HabitCollection struct {
	byID  map[string]*Habit
	order []string
}

func NewHabitCollection() *HabitCollection {
	return &HabitCollection{
		byID: make(map[string]*Habit),
	}
}

func (c *HabitCollection) Add(h *Habit) error {
	if h.ID == "" {
		return ErrMissingID
	}
	if _, exists := c.byID[h.ID]; exists {
		return ErrDuplicateID
	}

	c.byID[h.ID] = h
	c.order = append(c.order, h.ID)
	return nil
}

func (c *HabitCollection) Get(id string) (*Habit, bool) {
	h, ok := c.byID[id]
	return h, ok
}

func (c *HabitCollection) Remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}

	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *HabitCollection) Len() int {
	return len(c.order)
}

// All returns every habit in insertion order.
func (c *HabitCollection) All() []*Habit {
	return c.filter(func(*Habit) bool { return true })
}

func (c *HabitCollection) Active() []*Habit {
	return c.filter(func(h *Habit) bool { return !h.IsArchived() })
}

func (c *HabitCollection) Archived() []*Habit {
	return c.filter(func(h *Habit) bool { return h.IsArchived() })
}

func (c *HabitCollection) filter(keep func(*Habit) bool) []*Habit {
	list := make([]*Habit, 0, len(c.order))
	for _, id := range c.order {
		if h := c.byID[id]; keep(h) {
			list = append(list, h)
		}
	}
	return list
}

// Clone deep-copies the collection.
func (c *HabitCollection) Clone() *HabitCollection {
	clone := &HabitCollection{
		byID:  make(map[string]*Habit, len(c.byID)),
		order: append([]string(nil), c.order...),
	}
	for id, h := range c.byID {
		clone.byID[id] = h.Clone()
	}
	return clone
}
