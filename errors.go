package pgembed

import "fmt"

// Kind enumerates the structured error taxonomy from which every component
// in this module draws its failures.
type Kind int

const (
	// Configuration / platform
	InvalidPgUrl Kind = iota

	// Acquisition
	DownloadFailure
	ConversionFailure
	InvalidPgPackage
	UnpackFailure

	// Filesystem
	WriteFileError
	ReadFileError
	DirCreationError

	// Process
	PgInitFailure
	PgStartFailure
	PgStopFailure
	PgProcessError
	PgTimedOutError
	PgBufferReadError
	PgTaskJoinError

	// Coordination
	PgLockError
	SendFailure

	// Teardown
	PgCleanUpFailure
	PgPurgeFailure

	// SQL (optional feature)
	SqlQueryError
	MigrationError

	// Generic wrapper
	PgError
)

func (k Kind) String() string {
	switch k {
	case InvalidPgUrl:
		return "InvalidPgUrl"
	case DownloadFailure:
		return "DownloadFailure"
	case ConversionFailure:
		return "ConversionFailure"
	case InvalidPgPackage:
		return "InvalidPgPackage"
	case UnpackFailure:
		return "UnpackFailure"
	case WriteFileError:
		return "WriteFileError"
	case ReadFileError:
		return "ReadFileError"
	case DirCreationError:
		return "DirCreationError"
	case PgInitFailure:
		return "PgInitFailure"
	case PgStartFailure:
		return "PgStartFailure"
	case PgStopFailure:
		return "PgStopFailure"
	case PgProcessError:
		return "PgProcessError"
	case PgTimedOutError:
		return "PgTimedOutError"
	case PgBufferReadError:
		return "PgBufferReadError"
	case PgTaskJoinError:
		return "PgTaskJoinError"
	case PgLockError:
		return "PgLockError"
	case SendFailure:
		return "SendFailure"
	case PgCleanUpFailure:
		return "PgCleanUpFailure"
	case PgPurgeFailure:
		return "PgPurgeFailure"
	case SqlQueryError:
		return "SqlQueryError"
	case MigrationError:
		return "MigrationError"
	default:
		return "PgError"
	}
}

// Error is the single structured error type propagated from every
// component. Context carries free-form detail (a URL, a path, an argv)
// useful for diagnostics without needing a new Kind per call site.
type Error struct {
	Kind    Kind
	Message string
	Context string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Context, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// newErr builds an *Error wrapping cause, for use in errorfmt.Handlef-style
// deferred wrapping at component boundaries.
func newErr(kind Kind, context string, err error) *Error {
	return &Error{Kind: kind, Context: context, Err: err}
}

// Errf is like fmt.Errorf but tags the result with a taxonomy Kind so
// callers can errors.As to *Error and switch on Kind.
func Errf(kind Kind, context, format string, args ...any) *Error {
	return &Error{Kind: kind, Context: context, Message: fmt.Sprintf(format, args...)}
}
