package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "config", err: NewConfigError("missing token", nil), want: CodeConfig},
		{name: "transport", err: NewTransportError("dial failed", io.EOF), want: CodeTransport},
		{name: "unexpected status", err: NewUnexpectedStatusError("got 503"), want: CodeUnexpectedStatus},
		{name: "malformed response", err: NewMalformedResponseError("no homeworks", nil), want: CodeMalformedResponse},
		{name: "missing field", err: NewMissingFieldError("no homework_name"), want: CodeMissingField},
		{name: "unknown status", err: NewUnknownStatusError("archived"), want: CodeUnknownStatus},
		{name: "delivery", err: NewDeliveryError("send failed", io.EOF), want: CodeDelivery},
		{name: "plain error", err: stderrors.New("plain"), want: CodeUnknown},
		{name: "wrapped application error", err: fmt.Errorf("cycle failed: %w", NewTransportError("dial failed", nil)), want: CodeTransport},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Code(tc.err))
		})
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	t.Parallel()

	err := NewTransportError("request to homework API failed", io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "request to homework API failed")
	assert.Contains(t, err.Error(), io.ErrUnexpectedEOF.Error())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
