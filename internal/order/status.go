package order

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusReadyForPickup Status = "ready_for_pickup"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

// AllStatuses in fulfillment order, cancelled last.
var AllStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusReadyForPickup,
	StatusCompleted,
	StatusCancelled,
}

func (s Status) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// forward is the linear happy path; each status maps to its only
// permitted successor.
var forward = map[Status]Status{
	StatusPending:        StatusConfirmed,
	StatusConfirmed:      StatusReadyForPickup,
	StatusReadyForPickup: StatusCompleted,
}

// CanTransition is the single source of truth for the order state
// machine. Cancellation is allowed from any non-terminal state; forward
// movement only along the happy path. Terminal states have no exits.
func CanTransition(from, to Status) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return forward[from] == to
}

// UserMayCancel reports whether the owning user may still cancel; users
// lose that right once the order is ready for pickup.
func UserMayCancel(from Status) bool {
	return from == StatusPending || from == StatusConfirmed
}
