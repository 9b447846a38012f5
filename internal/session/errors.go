package session

import "errors"

// ErrTransitionNotAllowed is returned when an action is not valid in the
// session's current state. The session is left unchanged.
var ErrTransitionNotAllowed = errors.New("session: transition not allowed")
