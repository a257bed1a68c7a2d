package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{BadRequest("bad"), http.StatusBadRequest},
		{Unavailable("down", errors.New("dial tcp")), http.StatusInternalServerError},
		{New(KindUnknown, "?"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.want {
			t.Errorf("%v: HTTPStatus() = %d, want %d", tt.err.Kind, got, tt.want)
		}
	}
}

func TestAsThroughWrapping(t *testing.T) {
	cause := errors.New("smtp: 421")
	err := fmt.Errorf("submit: %w", Unavailable("Failed to send email", cause).WithOp("contact.Submit"))

	appErr, ok := As(err)
	if !ok || appErr.Kind != KindUnavailable {
		t.Fatalf("expected KindUnavailable, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if _, ok := As(cause); ok {
		t.Fatal("plain errors must not match")
	}
}

func TestErrorMessageIncludesOp(t *testing.T) {
	err := Validation("Invalid input").WithOp("contact.Submit")
	if err.Error() != "contact.Submit: Invalid input" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
