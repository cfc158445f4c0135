package providers

import (
	"errors"
)

type Kind string

const (
	KindInvalidInput   Kind = "INVALID_INPUT"
	KindNotFound       Kind = "NOT_FOUND"
	KindUpstreamError  Kind = "UPSTREAM_ERROR"
	KindTransportError Kind = "TRANSPORT_ERROR"
)

const (
	MsgBlankCity          = "Please type a city name."
	MsgTransport          = "Network or API error. Try again later."
	MsgUnexpectedResponse = "Unexpected response from weather API."
	MsgCoordinatesFailed  = "Unable to fetch weather for coordinates."
	MsgForecastFailed     = "Forecast API failed"
)

// Error is a classified lookup failure. Message is safe to show to users;
// Err carries the diagnostic cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage returns the user-facing text for err.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return MsgTransport
}
