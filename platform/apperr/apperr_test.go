package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusByKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("job not found"), http.StatusNotFound},
		{Validation("bad region"), http.StatusBadRequest},
		{BadRequest("bad body"), http.StatusBadRequest},
		{Unauthorized("missing token"), http.StatusUnauthorized},
		{Unavailable("queue disabled"), http.StatusServiceUnavailable},
		{Internal("boom"), http.StatusInternalServerError},
		{New(KindUnknown, "?"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("%q: expected status %d, got %d", tc.err.Message, tc.want, got)
		}
	}
}

func TestErrorIncludesOp(t *testing.T) {
	err := Validation("too short").WithOp("phone.Parse")
	if err.Error() != "phone.Parse: too short" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestGetKindFollowsWrapChain(t *testing.T) {
	base := errors.New("driver failure")
	err := fmt.Errorf("lookup: %w", Wrap(KindInternal, "cache read failed", base))

	if GetKind(err) != KindInternal {
		t.Fatalf("expected KindInternal, got %v", GetKind(err))
	}
	if !Is(err, KindInternal) {
		t.Fatal("expected Is to match through fmt wrapping")
	}
	if !errors.Is(err, base) {
		t.Fatal("expected underlying error to be reachable")
	}
	if GetKind(base) != KindUnknown {
		t.Fatal("expected plain errors to report KindUnknown")
	}
}
