package define

// Outcome is the state of a supervised session as seen from its terminal output.
type Outcome int

const (
	StillRunning Outcome = iota
	PasswordSent
	WrongPassword
	HostKeyUnknownOutcome
	HostKeyChangedOutcome
	PtyClosed
	ChildExited
	TerminatedBySignal
)

func (o Outcome) String() string {
	switch o {
	case StillRunning:
		return "still-running"
	case PasswordSent:
		return "password-sent"
	case WrongPassword:
		return "wrong-password"
	case HostKeyUnknownOutcome:
		return "host-key-unknown"
	case HostKeyChangedOutcome:
		return "host-key-changed"
	case PtyClosed:
		return "pty-closed"
	case ChildExited:
		return "child-exited"
	case TerminatedBySignal:
		return "terminated-by-signal"
	default:
		return "unknown"
	}
}

// Decisive reports whether the outcome ends the session before the child exits.
func (o Outcome) Decisive() bool {
	return o.ReturnCode() != NoError
}

// ReturnCode maps outcomes decided from the terminal output to their exit status.
// Every other outcome defers to the child's own status.
func (o Outcome) ReturnCode() ReturnCode {
	switch o {
	case WrongPassword:
		return IncorrectPassword
	case HostKeyUnknownOutcome:
		return HostKeyUnknown
	case HostKeyChangedOutcome:
		return HostKeyChanged
	default:
		return NoError
	}
}
