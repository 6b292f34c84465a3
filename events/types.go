package events

import (
	"time"
)

// Type represents the kind of game event.
type Type int

const (
	// ShotFired marks every click, hit or miss
	// Trigger: session shot handler | Consumers: audio, status line | Payload: none
	ShotFired Type = iota

	// TargetHit marks a resolved hit on any target
	// Trigger: state machine | Consumers: audio | Payload: TargetID
	TargetHit

	// TargetMiss marks a shot that resolved to nothing
	// Trigger: session shot handler | Consumers: audio | Payload: none
	TargetMiss

	// TargetFlash requests the shatter animation on a mug
	// Fired for one-time add/remove actions only, purely cosmetic
	// Trigger: state machine | Consumers: render | Payload: TargetID
	TargetFlash

	// ItemAdded marks a one-time line insert or increment
	// Trigger: state machine | Consumers: audio | Payload: TargetID (variant id)
	ItemAdded

	// ItemRemoved marks a one-time line decrement or deletion
	// Trigger: state machine | Consumers: audio | Payload: TargetID (variant id)
	ItemRemoved

	// SubscriptionAdded marks a subscription fast-path insert
	// Trigger: state machine | Consumers: audio | Payload: TargetID (variant id)
	SubscriptionAdded

	// DuplicateSubscription marks the informational duplicate no-op
	// Trigger: state machine | Consumers: audio (error buzz) | Payload: TargetID
	DuplicateSubscription

	// CartCleared marks a full cart wipe (manual clear or checkout success)
	// Trigger: session | Consumers: audio | Payload: none
	CartCleared
)

// Event is one queued game event.
type Event struct {
	Type Type
	// TargetID correlates feedback to the hit target, empty when the
	// event has no subject.
	TargetID string
	At       time.Time
}
