package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   ErrorCode
	}{
		{InvalidArgf("bad date %q", "x"), http.StatusUnprocessableEntity, ErrorCodeInvalidArgument},
		{NotFoundf("vehicle %s", "v1"), http.StatusNotFound, ErrorCodeNotFound},
		{JSONErrf("malformed"), http.StatusBadRequest, ErrorCodeJSON},
		{Unavailablef("ch down"), http.StatusServiceUnavailable, ErrorCodeUnavailable},
		{fmt.Errorf("foreign: %w", stderrs.New("x")), http.StatusInternalServerError, ErrorCodeInternal},
	}
	for _, c := range cases {
		st, w := HTTP(c.err)
		if st != c.status || w.Code != c.code {
			t.Fatalf("HTTP(%v) = %d %s, want %d %s", c.err, st, w.Code, c.status, c.code)
		}
	}
	if _, w := HTTP(stderrs.New("secret dsn")); w.Message != "internal error" {
		t.Fatalf("foreign error text leaked: %q", w.Message)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrs.New("boom")
	err := Wrapf(cause, ErrorCodeDB, "load %s", "photos")
	if !stderrs.Is(err, cause) || Root(err) != cause {
		t.Fatalf("cause lost: %v", err)
	}
	if err.Error() != "load photos: boom" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if Wrap(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}
	f := WithField(InvalidArgf("required"), "vehicle_id")
	if e, _ := As(f); e.Field() != "vehicle_id" {
		t.Fatalf("field = %q", e.Field())
	}
}

func TestFromPG(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{pgx.ErrNoRows, ErrorCodeNotFound},
		{&pgconn.PgError{Code: "22P02"}, ErrorCodeInvalidArgument},
		{&pgconn.PgError{Code: "57P03"}, ErrorCodeUnavailable},
		{&pgconn.PgError{Code: "42P01"}, ErrorCodeDB},
		{context.DeadlineExceeded, ErrorCodeUnavailable},
		{stderrs.New("other"), ErrorCodeDB},
	}
	for _, c := range cases {
		if got := CodeOf(FromPG(c.err, "query")); got != c.code {
			t.Fatalf("FromPG(%v) code = %s, want %s", c.err, got, c.code)
		}
	}
	if FromPG(nil, "x") != nil {
		t.Fatalf("FromPG(nil) should be nil")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&pgconn.PgError{Code: "40001"}) {
		t.Fatalf("serialization failure should retry")
	}
	if IsRetryable(&pgconn.PgError{Code: "23505"}) || IsRetryable(context.Canceled) || IsRetryable(nil) {
		t.Fatalf("unexpected retryable")
	}
}
