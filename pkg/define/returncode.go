package define

import "fmt"

// ReturnCode is the stable exit status contract for calling scripts.
type ReturnCode int

const (
	NoError ReturnCode = iota
	InvalidArguments
	ConflictingArguments
	RuntimeError
	ParseError
	IncorrectPassword
	HostKeyUnknown
	HostKeyChanged
)

// SignalDeathStatus is returned when the child was killed by a signal.
const SignalDeathStatus = 255

func (c ReturnCode) String() string {
	switch c {
	case NoError:
		return "no error"
	case InvalidArguments:
		return "invalid arguments"
	case ConflictingArguments:
		return "conflicting arguments"
	case RuntimeError:
		return "runtime error"
	case ParseError:
		return "parse error"
	case IncorrectPassword:
		return "incorrect password"
	case HostKeyUnknown:
		return "host key unknown"
	case HostKeyChanged:
		return "host key changed"
	default:
		return fmt.Sprintf("return code %d", int(c))
	}
}

// CodedError is an error that decides the process exit status.
type CodedError struct {
	Code ReturnCode
	Err  error
}

func NewCodedError(code ReturnCode, format string, args ...any) *CodedError {
	return &CodedError{Code: code, Err: fmt.Errorf(format, args...)}
}

func (e *CodedError) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}
