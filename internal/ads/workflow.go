package ads

import "fmt"

// CanTransition reports whether a moderator may move an ad from one status
// to another. Any current status may be re-moderated; pending is only ever
// the initial state.
func CanTransition(from, to Status) error {
	if !from.Valid() {
		return fmt.Errorf("unknown status %q", from)
	}
	switch to {
	case StatusApproved, StatusRejected:
		return nil
	default:
		return fmt.Errorf("cannot move ad to %q", to)
	}
}
