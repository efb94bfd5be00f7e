package notification

import (
	"fmt"
)

// DeliveryState is the state of one delivery unit: one event through one channel.
//
//	PENDING ──> ATTEMPTING ──┬──> SUCCEEDED
//	               ^         ├──> FAILED
//	               │         └──> WAITING_RETRY ─┐
//	               └─────────────────────────────┘
//
// A wait interrupted by shutdown moves WAITING_RETRY straight to FAILED.
type DeliveryState int

const (
	Pending DeliveryState = iota
	Attempting
	WaitingRetry
	Succeeded
	Failed
)

func (s DeliveryState) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Attempting:
		return "ATTEMPTING"
	case WaitingRetry:
		return "WAITING_RETRY"
	case Succeeded:
		return "SUCCEEDED"
	case Failed:
		return "FAILED"
	default:
		return fmt.Sprintf("DeliveryState(%d)", int(s))
	}
}

// IsTerminal reports whether s is SUCCEEDED or FAILED.
func (s DeliveryState) IsTerminal() bool {
	return s == Succeeded || s == Failed
}

func (s DeliveryState) canMoveTo(next DeliveryState) bool {
	switch s {
	case Pending:
		return next == Attempting
	case WaitingRetry:
		return next == Attempting || next == Failed
	case Attempting:
		return next == Succeeded || next == Failed || next == WaitingRetry
	default:
		return false
	}
}

// Delivery tracks a single delivery unit. It is owned by one goroutine.
type Delivery struct {
	channel  string
	event    Event
	state    DeliveryState
	attempts int
}

func NewDelivery(channel string, event Event) *Delivery {
	return &Delivery{channel: channel, event: event, state: Pending}
}

func (d *Delivery) Channel() string { return d.channel }
func (d *Delivery) Event() Event { return d.event }
func (d *Delivery) State() DeliveryState { return d.state }
func (d *Delivery) Attempts() int { return d.attempts }

// Attempt moves to ATTEMPTING and counts the attempt.
func (d *Delivery) Attempt() error {
	if err := d.moveTo(Attempting); err != nil {
		return err
	}
	d.attempts++
	return nil
}

func (d *Delivery) WaitRetry() error { return d.moveTo(WaitingRetry) }
func (d *Delivery) Succeed() error { return d.moveTo(Succeeded) }
func (d *Delivery) Fail() error { return d.moveTo(Failed) }

func (d *Delivery) moveTo(next DeliveryState) error {
	if !d.state.canMoveTo(next) {
		return fmt.Errorf("delivery %s/%s: illegal move from %s to %s", d.channel, d.event.Type(), d.state, next)
	}
	d.state = next
	return nil
}
