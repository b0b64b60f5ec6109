package ecs

import (
	"github.com/milk9111/gridhunt/ecs/component"
)

// Add stores value for e, replacing any existing component of that kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeFor(w, kind, false)
	if s == nil || !IsAlive(w, e) {
		return false
	}
	return s.remove(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

// Get returns the stored pointer, so callers mutate components in place.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	s := storeFor(w, kind, false)
	if s == nil || !IsAlive(w, e) {
		return nil, false
	}
	return s.get(e.id())
}

// First returns the lowest-id live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0, false
	}
	var best Entity
	for _, e := range s.dense {
		if IsAlive(w, e) && (best == 0 || e.id() < best.id()) {
			best = e
		}
	}
	return best, best != 0
}

// Query returns live entities carrying kind in ascending id order.
func Query[T any](w *World, kind component.ComponentKind[T]) []Entity {
	s := storeFor(w, kind, false)
	if s == nil {
		return nil
	}
	out := make([]Entity, 0, s.len())
	for _, e := range Entities(w) {
		if s.has(e.id()) {
			out = append(out, e)
		}
	}
	return out
}

// snapshot copies the dense entity list so callbacks may add or remove
// components while iterating.
func snapshot[T any](w *World, kind component.ComponentKind[T]) []Entity {
	s := storeFor(w, kind, false)
	if s == nil || s.len() == 0 {
		return nil
	}
	return append([]Entity(nil), s.dense...)
}

func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	for _, e := range snapshot(w, ka) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range snapshot(w, ka) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		c, ok := Get(w, e, kc)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		d, ok := Get(w, e, kd)
		if !ok {
			return
		}
		fn(e, a, b, c, d)
	})
}
