package order

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	CREATED ──┬──> COMPLETED
//	          └──> CANCELLED
//
// COMPLETED and CANCELLED are terminal. Self transitions and transitions back
// to CREATED are illegal.
type Status int

const (
	// Unknown is the zero value and never valid. It catches uninitialised
	// statuses and unrecognised names.
	Unknown Status = iota

	// Created is the initial status of every order.
	Created

	// Cancelled is terminal.
	Cancelled

	// Completed is terminal.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Created:   "CREATED",
		Cancelled: "CANCELLED",
		Completed: "COMPLETED",
	}
}

// getValidStatusStrings excludes Unknown.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is not a valid status
	return map[Status]string{
		Created:   "CREATED",
		Cancelled: "CANCELLED",
		Completed: "COMPLETED",
	}
}

// transitions is the whole state machine: source status to allowed targets.
//
//nolint:gochecknoglobals // read-only table
var transitions = map[Status][]Status{
	Created: {Cancelled, Completed},
}

// Statuses lists the valid statuses in declaration order.
func Statuses() []Status {
	return []Status{Created, Cancelled, Completed}
}

// ParseStatus converts a status name such as "COMPLETED" into a Status.
// Matching ignores case and surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate returns an error for Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(transitions[s]) == 0
}

// CanTransitionTo is the transition rule. It has no side effects.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next when the move is legal and an
// *InvalidTransitionError otherwise.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return s, NewInvalidTransitionError(s, next)
	}
	return next, nil
}
