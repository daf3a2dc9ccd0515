package pgerr

import (
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/orderstore/order-svc/internal/service/errs"
)

// Wrap classifies a pgx error. Connection-level failures are marked as
// errs.ConnectionError so the transport can answer 503 and the retry policy
// knows the call is retryable; everything else passes through untouched.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return errs.NewConnection(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return errs.NewConnection(err)
	}

	if pgconn.SafeToRetry(err) {
		return errs.NewConnection(err)
	}

	return err
}
