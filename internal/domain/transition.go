package domain

import "fmt"

type ModerationAction string

const (
	ActionApprove ModerationAction = "approve"
	ActionReject  ModerationAction = "reject"
	ActionSuspend ModerationAction = "suspend"
)

// InvalidTransitionError names the status and the action the state
// machine refused, so handlers can surface both to the admin UI.
type InvalidTransitionError struct {
	From   AccountStatus
	Action ModerationAction
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s account in status %q", e.Action, e.From)
}

// TransitionPolicy configures the registration state machine.
type TransitionPolicy struct {
	// AllowRejectedReapproval lets approve act on rejected accounts.
	// Off by default: rejected is a terminal status.
	AllowRejectedReapproval bool
}

// Transition returns the status an account moves to when action is
// applied. On an invalid (status, action) pair it returns the current
// status unchanged together with *InvalidTransitionError.
func (p TransitionPolicy) Transition(from AccountStatus, action ModerationAction) (AccountStatus, error) {
	switch action {
	case ActionApprove:
		if from == StatusPending || from == StatusSuspended {
			return StatusApproved, nil
		}
		if p.AllowRejectedReapproval && from == StatusRejected {
			return StatusApproved, nil
		}
	case ActionReject:
		if from == StatusPending {
			return StatusRejected, nil
		}
	case ActionSuspend:
		if from == StatusApproved {
			return StatusSuspended, nil
		}
	}
	return from, &InvalidTransitionError{From: from, Action: action}
}

// ValidAction reports whether action is one of the known moderation verbs.
func ValidAction(action ModerationAction) bool {
	switch action {
	case ActionApprove, ActionReject, ActionSuspend:
		return true
	}
	return false
}
