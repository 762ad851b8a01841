package addresskit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsByKind(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		is   error
		not  []error
	}{
		{name: "timeout", err: timeoutError(context.DeadlineExceeded), is: ErrTimeout, not: []error{ErrHTTPStatus, ErrTransport}},
		{name: "status", err: statusError(500), is: ErrHTTPStatus, not: []error{ErrTimeout, ErrTransport}},
		{name: "transport", err: transportError("request failed", errors.New("connection refused")), is: ErrTransport, not: []error{ErrTimeout, ErrHTTPStatus}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("load provinces: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.is)
			for _, other := range tt.not {
				assert.NotErrorIs(t, wrapped, other)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "HTTP error! status: 503", statusError(503).Error())
	assert.Equal(t, "request failed: connection refused", transportError("request failed", errors.New("connection refused")).Error())
	assert.True(t, errors.Is(timeoutError(context.DeadlineExceeded), context.DeadlineExceeded))
}

func TestStatusCode(t *testing.T) {
	code, ok := StatusCode(statusError(502))
	assert.True(t, ok)
	assert.Equal(t, 502, code)

	_, ok = StatusCode(timeoutError(nil))
	assert.False(t, ok)

	_, ok = StatusCode(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "TIMEOUT", KindTimeout.String())
	assert.Equal(t, "HTTP_STATUS", KindHTTPStatus.String())
	assert.Equal(t, "FETCH_ERROR", KindTransport.String())
}
