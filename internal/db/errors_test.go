package db

import (
	"errors"
	"testing"
)

func TestError_WrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := error(&Error{Op: OpGet, Err: cause})

	if err.Error() != "GET: connection reset" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is must reach the cause")
	}
	var dbErr *Error
	if !errors.As(err, &dbErr) || dbErr.Op != OpGet {
		t.Errorf("errors.As = %+v", dbErr)
	}
}
