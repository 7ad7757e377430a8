// Package base holds helpers shared by the concrete repositories.
package base

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avoshchina/tutorhub/internal/apperr"
)

// IsNotFound reports whether err means "no row".
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// WrapErr wraps a storage error with the operation name. Connection-level
// failures are collapsed into apperr.ErrUpstreamUnavailable so the transport
// can surface them as a data-load problem rather than an internal fault.
func WrapErr(op string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w", op, apperr.ErrUpstreamUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
