// Package spawnring places spawned units on concentric rings of fixed
// angular slots so no two live units share a slot.
package spawnring

import "github.com/go-gl/mathgl/mgl64"

// NoSlot marks a missing slot in a Reservation.
const NoSlot = -1

// Right is the reference direction slot 0 points along.
var Right = mgl64.Vec2{1, 0}

// Layer is one ring of evenly spaced slots.
type Layer struct {
	Radius float64

	filled []bool
	count  int
}

// NewLayer creates an empty ring. Validation happens in NewScheduler.
func NewLayer(radius float64, slots int) *Layer {
	if slots < 0 {
		slots = 0
	}
	return &Layer{Radius: radius, filled: make([]bool, slots)}
}

// Slots is the fixed slot count.
func (l *Layer) Slots() int {
	if l == nil {
		return 0
	}
	return len(l.filled)
}

// Filled is the number of occupied slots.
func (l *Layer) Filled() int {
	if l == nil {
		return 0
	}
	return l.count
}

// IsFull reports whether every slot is occupied.
func (l *Layer) IsFull() bool {
	if l == nil {
		return true
	}
	return l.count == len(l.filled)
}

// Valid reports whether slot is a real index on this ring.
func (l *Layer) Valid(slot int) bool {
	return l != nil && slot >= 0 && slot < len(l.filled)
}

// IsSlotFree reports whether slot exists and is unoccupied.
func (l *Layer) IsSlotFree(slot int) bool {
	if !l.Valid(slot) {
		return false
	}
	return !l.filled[slot]
}

// SetSlotFilled marks slot occupied.
func (l *Layer) SetSlotFilled(slot int) {
	if !l.Valid(slot) || l.filled[slot] {
		return
	}
	l.filled[slot] = true
	l.count++
}

// SetSlotClear frees slot.
func (l *Layer) SetSlotClear(slot int) {
	if !l.Valid(slot) || !l.filled[slot] {
		return
	}
	l.filled[slot] = false
	l.count--
}

// Clear frees every slot.
func (l *Layer) Clear() {
	if l == nil {
		return
	}
	clear(l.filled)
	l.count = 0
}

// SlotAngle is the slot's angle in degrees from Right.
func (l *Layer) SlotAngle(slot int) float64 {
	n := l.Slots()
	if n == 0 {
		return 0
	}
	return 360 / float64(n) * float64(slot)
}

// SlotPosition is the world position of slot around center.
func (l *Layer) SlotPosition(slot int, center mgl64.Vec2) mgl64.Vec2 {
	if l == nil {
		return center
	}
	dir := mgl64.Rotate2D(mgl64.DegToRad(l.SlotAngle(slot))).Mul2x1(Right)
	return center.Add(dir.Mul(l.Radius))
}
