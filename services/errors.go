package services

// ErrorKind classifies service failures so controllers can map them onto
// HTTP statuses without parsing message text.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindConflict
	KindInvalidArgument
	KindInternal
)

// Error is the typed result every service operation fails with. Storage
// error text never travels in Message; callers only ever see the stable
// kind plus a human-readable line.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// StatusCode maps a service error onto an HTTP status code. Unknown errors
// are treated as internal.
func StatusCode(err error) int {
	serr, ok := err.(*Error)
	if !ok {
		return 500
	}
	switch serr.Kind {
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	case KindInvalidArgument:
		return 400
	default:
		return 500
	}
}

// Message returns the caller-safe message for an error. Anything that is
// not a service error gets a generic line so storage internals never leak.
func Message(err error) string {
	if serr, ok := err.(*Error); ok {
		return serr.Message
	}
	return "Something went wrong. Please try again later."
}
