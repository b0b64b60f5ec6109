package ecs

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/gridhunt/board"
	"github.com/milk9111/gridhunt/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeActor
)

const (
	defaultBodyMass     = 1.0
	defaultBodyFriction = 0.0
	wallFriction        = 0.8
	spaceIterations     = 20
)

// PhysicsWorld owns the Chipmunk space for one level: merged static boxes
// for blocked tiles, a border, and one dynamic box per actor. The world is
// top-down, so there is no gravity and actors pass through each other.
type PhysicsWorld struct {
	board *board.Board
	space *cp.Space

	bodies      map[Entity]*component.PhysicsBody
	staticCount int
}

// NewPhysicsWorld builds static collision from the board's blocked tiles.
func NewPhysicsWorld(b *board.Board) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = spaceIterations
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		board:  b,
		space:  space,
		bodies: make(map[Entity]*component.PhysicsBody),
	}
	pw.buildStaticShapes()
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// StaticShapeCount is the number of merged wall boxes, border excluded.
func (pw *PhysicsWorld) StaticShapeCount() int {
	if pw == nil {
		return 0
	}
	return pw.staticCount
}

// EnsureBody creates a dynamic body centred on t if body has none yet.
func (pw *PhysicsWorld) EnsureBody(e Entity, t *component.Transform, body *component.PhysicsBody) {
	if pw == nil || t == nil || body == nil || body.Body != nil {
		return
	}
	size := pw.board.TileSize()
	if body.Width <= 0 {
		body.Width = size * 0.8
	}
	if body.Height <= 0 {
		body.Height = size * 0.8
	}
	mass := body.Mass
	if mass <= 0 {
		mass = defaultBodyMass
	}

	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	shape := cp.NewBox(cpBody, body.Width, body.Height, 0)
	shape.SetFriction(body.Friction)
	shape.SetCollisionType(collisionTypeActor)

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)

	body.Body = cpBody
	body.Shape = shape
	pw.bodies[e] = body
}

// RemoveBody drops e's body from the space.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil {
		return
	}
	body, ok := pw.bodies[e]
	if !ok {
		return
	}
	delete(pw.bodies, e)
	if body.Shape != nil {
		pw.space.RemoveShape(body.Shape)
	}
	if body.Body != nil {
		pw.space.RemoveBody(body.Body)
	}
	body.Body, body.Shape = nil, nil
}

// Bodies lists entities that currently own a body.
func (pw *PhysicsWorld) Bodies() []Entity {
	if pw == nil {
		return nil
	}
	out := make([]Entity, 0, len(pw.bodies))
	for e := range pw.bodies {
		out = append(out, e)
	}
	return out
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

func (pw *PhysicsWorld) buildStaticShapes() {
	if pw == nil || pw.board == nil {
		return
	}
	pw.mergeBlockedTiles()

	size := pw.board.TileSize()
	worldW := float64(pw.board.Width()) * size
	worldH := float64(pw.board.Height()) * size
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(wallFriction)
		shape.SetCollisionType(collisionTypeSolid)
		pw.space.AddShape(shape)
	}
}

// mergeBlockedTiles greedily grows rectangles of blocked tiles, first along
// x then along y, and adds one static box per rectangle.
func (pw *PhysicsWorld) mergeBlockedTiles() {
	b := pw.board
	width, height := b.Width(), b.Height()
	size := b.TileSize()
	processed := make([]bool, width*height)

	usable := func(x, y int) bool {
		return b.IsBlocked(x, y) && !processed[y*width+x]
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !usable(x, y) {
				continue
			}

			w := 1
			for x+w < width && usable(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if !usable(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			x0, y0 := float64(x)*size, float64(y)*size
			bb := cp.BB{L: x0, B: y0, R: x0 + float64(w)*size, T: y0 + float64(h)*size}
			shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
			shape.SetFriction(wallFriction)
			shape.SetCollisionType(collisionTypeSolid)
			pw.space.AddShape(shape)
			pw.staticCount++

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}
		}
	}
	slog.Debug("physics: static shapes built", "boxes", pw.staticCount, "width", width, "height", height)
}

func (pw *PhysicsWorld) setupHandlers() {
	// Actors share tiles when attacking at range 0, so they never push each
	// other.
	actors := pw.space.NewCollisionHandler(collisionTypeActor, collisionTypeActor)
	actors.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}
}
