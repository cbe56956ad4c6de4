package shared

import (
	"errors"

	"pos-terminal/internal/pkg/errs"
)

const ConnectivityMessage = "Could not reach the server. Check the connection and try again."

// SyncError is a backend rejection. Detail is shown to the operator verbatim.
type SyncError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *SyncError) Error() string {
	return e.Detail
}

// TransportError means the request was not delivered or the answer was unusable.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func NewSyncError(op string, status int, detail string) error {
	return errs.Mark(&SyncError{Op: op, StatusCode: status, Detail: detail}, errs.ErrSyncRejected)
}

func NewTransportError(op string, err error) error {
	return errs.Mark(&TransportError{Op: op, Err: err}, errs.ErrTransport)
}

// OperatorMessage maps a failed submission to what the payment dialog displays.
func OperatorMessage(err error) string {
	var syncErr *SyncError
	if errors.As(err, &syncErr) && syncErr.Detail != "" {
		return syncErr.Detail
	}
	return ConnectivityMessage
}

// FailureReason is a low-cardinality label for metrics and logs.
func FailureReason(err error) string {
	switch {
	case errs.Is(err, errs.ErrSyncRejected):
		return "rejected"
	case errs.Is(err, errs.ErrTransport):
		return "transport"
	default:
		return "unknown"
	}
}
