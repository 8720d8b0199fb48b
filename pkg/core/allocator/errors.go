package allocator

import "errors"

// ErrCapacityExhausted is returned by Ledger.Commit when an activity-day has
// no seats left. The network builder only offers seats it knows exist, so
// seeing this during a run is an internal-consistency fault.
var ErrCapacityExhausted = errors.New("activity capacity exhausted")

// ErrNoAssignmentsMade is returned when a run commits nothing at all, either
// because no students were loaded or because every pass came up empty.
var ErrNoAssignmentsMade = errors.New("no assignments were made")
