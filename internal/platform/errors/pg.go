package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes and codes used for classification
const (
	sqlstateDataException     = "22"
	sqlstateIntegrity         = "23"
	sqlstateSerialization     = "40001"
	sqlstateDeadlock          = "40P01"
	sqlstateLockNotAvailable  = "55P03"
	sqlstateCannotConnectNow  = "57P03"
	sqlstateAdminShutdown     = "57P01"
	sqlstateConnectionFailure = "08"
)

// PgError returns the *pgconn.PgError in err's chain
func PgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if stderrs.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// PGCode classifies a database error. ok is false for errors that did not come from Postgres
func PGCode(err error) (code ErrorCode, ok bool) {
	if stderrs.Is(err, pgx.ErrNoRows) {
		return ErrorCodeNotFound, true
	}
	pe, ok := PgError(err)
	if !ok {
		if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
			return ErrorCodeUnavailable, true
		}
		return ErrorCodeDB, false
	}
	switch {
	case strings.HasPrefix(pe.Code, sqlstateDataException), strings.HasPrefix(pe.Code, sqlstateIntegrity):
		return ErrorCodeInvalidArgument, true
	case strings.HasPrefix(pe.Code, sqlstateConnectionFailure),
		pe.Code == sqlstateCannotConnectNow, pe.Code == sqlstateAdminShutdown:
		return ErrorCodeUnavailable, true
	default:
		return ErrorCodeDB, true
	}
}

// FromPG wraps a database error with its classified code. Cancellation keeps the unavailable code
func FromPG(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	code, _ := PGCode(err)
	return Wrap(err, code, msg)
}

// IsRetryable reports transient contention or connection loss worth another attempt
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pe, ok := PgError(err); ok {
		switch pe.Code {
		case sqlstateSerialization, sqlstateDeadlock, sqlstateLockNotAvailable, sqlstateCannotConnectNow:
			return true
		}
		return false
	}
	return pgconn.SafeToRetry(err)
}
