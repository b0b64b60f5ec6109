package component

type Health struct {
	Current int
	Max     int
}

// Defeated reports an entity that should no longer be targeted.
func (h *Health) Defeated() bool {
	return h == nil || h.Current <= 0
}

// Damage subtracts amount, clamping at zero, and returns the new value.
func (h *Health) Damage(amount int) int {
	if h == nil || amount <= 0 {
		return h.current()
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current
}

func (h *Health) current() int {
	if h == nil {
		return 0
	}
	return h.Current
}

var HealthComponent = NewComponent[Health]()
