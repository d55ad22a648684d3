package domain

// SessionState represents the lifecycle state of the local session.
type SessionState string

const (
	// StateNoSession means no credential is stored.
	StateNoSession SessionState = "no_session"
	// StateLocallyValid means the cached credential is trusted because the
	// server could not be reached. Degraded but accepted.
	StateLocallyValid SessionState = "locally_valid"
	// StateRemotelyConfirmed means the server vouched for the credential
	// during the most recent validation pass.
	StateRemotelyConfirmed SessionState = "remotely_confirmed"
)

// validTransitions defines the allowed session state machine transitions.
var validTransitions = map[SessionState][]SessionState{
	StateNoSession:         {StateRemotelyConfirmed},
	StateRemotelyConfirmed: {StateRemotelyConfirmed, StateLocallyValid, StateNoSession},
	StateLocallyValid:      {StateRemotelyConfirmed, StateLocallyValid, StateNoSession},
}

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
