package kynex

import (
	"github.com/akmonengine/kynex/actor"
	"github.com/akmonengine/kynex/constraint"
)

const (
	TRIGGER_ENTER EventType = iota
	COLLISION_ENTER
	TRIGGER_STAY
	COLLISION_STAY
	TRIGGER_EXIT
	COLLISION_EXIT
)

// pairKey identifies two bodies by id, lower id first
type pairKey struct {
	bodyA BodyID
	bodyB BodyID
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB BodyID) pairKey {
	if bodyB < bodyA {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Trigger events
type TriggerEnterEvent struct {
	BodyA BodyID
	BodyB BodyID
}

func (e TriggerEnterEvent) Type() EventType { return TRIGGER_ENTER }

type TriggerStayEvent struct {
	BodyA BodyID
	BodyB BodyID
}

func (e TriggerStayEvent) Type() EventType { return TRIGGER_STAY }

type TriggerExitEvent struct {
	BodyA BodyID
	BodyB BodyID
}

func (e TriggerExitEvent) Type() EventType { return TRIGGER_EXIT }

// Collision events
type CollisionEnterEvent struct {
	BodyA BodyID
	BodyB BodyID
	// Contact as detected at the start of the step
	Contact constraint.Contact
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	BodyA   BodyID
	BodyB   BodyID
	Contact constraint.Contact
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	BodyA BodyID
	BodyB BodyID
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

type activePair struct {
	trigger bool
	contact constraint.Contact
}

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]activePair
	currentActivePairs  map[pairKey]activePair
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]activePair),
		currentActivePairs:  make(map[pairKey]activePair),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollisions marks every manifold pair as active for this step and
// returns the manifolds that need a contact response, i.e. without triggers.
// The returned slice reuses the backing array of manifolds.
func (e *Events) recordCollisions(manifolds []constraint.Manifold, bodies []*actor.RigidBody) []constraint.Manifold {
	if e.currentActivePairs == nil {
		*e = NewEvents()
	}

	n := 0
	for _, m := range manifolds {
		isTrigger := bodies[m.BodyA].IsTrigger || bodies[m.BodyB].IsTrigger
		e.currentActivePairs[makePairKey(m.BodyA, m.BodyB)] = activePair{trigger: isTrigger, contact: m.Contact}

		if !isTrigger {
			manifolds[n] = m
			n++
		}
	}

	return manifolds[:n]
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	// Detect Enter and Stay events
	for pair, active := range e.currentActivePairs {
		previous, wasActive := e.previousActivePairs[pair]
		stay := wasActive && previous.trigger == active.trigger

		switch {
		case stay && active.trigger:
			e.buffer = append(e.buffer, TriggerStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		case stay:
			e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB, Contact: active.contact})
		case active.trigger:
			e.buffer = append(e.buffer, TriggerEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		default:
			e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB, Contact: active.contact})
		}
	}

	// Detect Exit events
	for pair, previous := range e.previousActivePairs {
		if _, ok := e.currentActivePairs[pair]; ok {
			continue
		}

		if previous.trigger {
			e.buffer = append(e.buffer, TriggerExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next frame and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	if e.currentActivePairs == nil {
		return
	}
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
