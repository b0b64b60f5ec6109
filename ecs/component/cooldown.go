package component

// Cooldown is a frame countdown. While it is present the entity's weapon is
// not ready; CooldownSystem removes it once Frames reaches zero.
type Cooldown struct {
	Frames int
}

var CooldownComponent = NewComponent[Cooldown]()
