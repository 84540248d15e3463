package request

import (
	"carrycampus/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery request.
// It implements a state machine with defined transitions so that requests
// follow the correct marketplace workflow.
//
// State transitions:
//
//	Open ──accept──> Assigned ──advance──> Picked ──advance──> Delivered
//	  │                  │  │                 │
//	  │                  │  └───── direct Delivered also permitted
//	  └──cancel── Cancelled ──cancel──────────┘
//
// Delivered and Cancelled are terminal. A transition into Delivered is what
// triggers reward settlement, so the state machine deliberately refuses to
// re-enter Delivered from Delivered.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status: the request is visible to fulfillers
	// and waiting for one of them to accept it.
	Open

	// Assigned indicates exactly one fulfiller has accepted the request.
	Assigned

	// Picked indicates the fulfiller has collected the parcel.
	Picked

	// Delivered indicates the parcel reached its destination and the
	// reward has been settled. Terminal.
	Delivered

	// Cancelled indicates the request was withdrawn before delivery. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Open:      "Open",
		Assigned:  "Assigned",
		Picked:    "Picked",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:      "Open",
		Assigned:  "Assigned",
		Picked:    "Picked",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// StatusFromString parses the string form produced by String.
// Parsing is used at the HTTP boundary where callers name the target status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValidationErrorWithCause("status",
		errs.NewInvalidStateError("request", s, "a known status"))
}

// Validate checks that the Status is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValidationError("status")
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Open -> Assigned
//
// Any other current status returns an InvalidStateError: a request that is no
// longer Open cannot be accepted, which is the domain half of the
// at-most-one-acceptance guarantee (the storage half is the conditional write).
func (s Status) Assign() (Status, error) {
	if s != Open {
		return 0, errs.NewInvalidStateError("request", s.String(), Assigned.String())
	}

	return Assigned, nil
}

// Pick transitions the status to Picked.
//
// Valid transitions:
//   - Assigned -> Picked
func (s Status) Pick() (Status, error) {
	if s != Assigned {
		return 0, errs.NewInvalidStateError("request", s.String(), Picked.String())
	}

	return Picked, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Assigned -> Delivered (direct delivery without a recorded pickup)
//   - Picked   -> Delivered
//
// Delivered -> Delivered is rejected rather than treated as idempotent;
// settlement happens on this transition and must run exactly once.
func (s Status) Deliver() (Status, error) {
	if s != Assigned && s != Picked {
		return 0, errs.NewInvalidStateError("request", s.String(), Delivered.String())
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Open     -> Cancelled
//   - Assigned -> Cancelled
//   - Picked   -> Cancelled (fulfiller abandoning an in-flight delivery)
//
// Requester-initiated cancellation is further restricted by the aggregate:
// once the parcel is Picked only the fulfiller may cancel.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, errs.NewInvalidStateError("request", s.String(), Cancelled.String())
	}

	return Cancelled, nil
}
