//go:build unit

package shared_test

import (
	"errors"
	"testing"

	"pos-terminal/internal/pkg/errs"
	"pos-terminal/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
)

func TestOperatorMessage(t *testing.T) {
	rejected := shared.NewSyncError("submit sale", 400, "Insufficient stock for Cola")
	undelivered := shared.NewTransportError("submit sale", errors.New("connection refused"))

	assert.Equal(t, "Insufficient stock for Cola", shared.OperatorMessage(rejected))
	assert.Equal(t, "Insufficient stock for Cola", shared.OperatorMessage(errs.Wrap(rejected, "confirm checkout")))
	assert.Equal(t, shared.ConnectivityMessage, shared.OperatorMessage(undelivered))
	assert.Equal(t, shared.ConnectivityMessage, shared.OperatorMessage(errors.New("boom")))

	assert.True(t, errs.Is(rejected, errs.ErrSyncRejected))
	assert.True(t, errs.Is(undelivered, errs.ErrTransport))
	assert.False(t, errs.Is(undelivered, errs.ErrSyncRejected))

	assert.Equal(t, "rejected", shared.FailureReason(rejected))
	assert.Equal(t, "transport", shared.FailureReason(undelivered))
	assert.Equal(t, "unknown", shared.FailureReason(errors.New("boom")))
}
