package component

// Mover is how fast an entity walks, in world units per second.
type Mover struct {
	Speed float64
}

var MoverComponent = NewComponent[Mover]()

// Weapon is what an Attack bit resolves to.
type Weapon struct {
	Damage         int
	CooldownFrames int
}

var WeaponComponent = NewComponent[Weapon]()

// Hazard makes an entity take Damage every IntervalFrames while it stands on
// a hazard tile. Frames counts up between hits.
type Hazard struct {
	Damage         int
	IntervalFrames int
	Frames         int
}

var HazardComponent = NewComponent[Hazard]()
