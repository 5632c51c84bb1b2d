package spawnring

// TicketState is the lifecycle of a unit holding a Reservation.
type TicketState int

const (
	Reserved TicketState = iota
	Traveling
	Arrived
	Dead
)

func (s TicketState) String() string {
	switch s {
	case Reserved:
		return "reserved"
	case Traveling:
		return "traveling"
	case Arrived:
		return "arrived"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Ticket tracks which of a reservation's slots a unit still holds. Each slot
// is cleared on the scheduler exactly once.
type Ticket struct {
	Reservation Reservation

	scheduler       *Scheduler
	state           TicketState
	spawnHeld       bool
	destinationHeld bool
}

// NewTicket wraps a reservation returned by FindSpawnReservation.
func NewTicket(s *Scheduler, r Reservation) *Ticket {
	return &Ticket{
		Reservation:     r,
		scheduler:       s,
		state:           Reserved,
		spawnHeld:       r.Valid(),
		destinationHeld: r.Valid(),
	}
}

// State returns the current lifecycle state.
func (t *Ticket) State() TicketState {
	if t == nil {
		return Dead
	}
	return t.state
}

// Scheduler is the scheduler the reservation was made on.
func (t *Ticket) Scheduler() *Scheduler {
	if t == nil {
		return nil
	}
	return t.scheduler
}

// HoldsSpawn reports whether the birth slot is still filled by this unit.
func (t *Ticket) HoldsSpawn() bool { return t != nil && t.spawnHeld }

// HoldsDestination reports whether the destination slot is still filled by
// this unit.
func (t *Ticket) HoldsDestination() bool { return t != nil && t.destinationHeld }

// Depart moves a reserved unit onto its path to the destination.
func (t *Ticket) Depart() {
	if t == nil || t.state != Reserved {
		return
	}
	t.state = Traveling
}

// Arrive frees the birth slot once the unit reaches its destination.
func (t *Ticket) Arrive() {
	if t == nil || (t.state != Reserved && t.state != Traveling) {
		return
	}
	t.releaseSpawn()
	t.state = Arrived
}

// Die frees whatever the unit still holds.
func (t *Ticket) Die() {
	if t == nil || t.state == Dead {
		return
	}
	t.releaseSpawn()
	t.releaseDestination()
	t.state = Dead
}

func (t *Ticket) releaseSpawn() {
	if !t.spawnHeld {
		return
	}
	t.spawnHeld = false
	t.scheduler.ClearSpawnSlot(t.Reservation)
}

func (t *Ticket) releaseDestination() {
	if !t.destinationHeld {
		return
	}
	t.destinationHeld = false
	t.scheduler.ClearDestinationSlot(t.Reservation)
}
