package domain

import "github.com/cockroachdb/errors"

var (
	ErrFlightNotFound       = errors.New("flight not found")
	ErrPaymentNotApplicable = errors.New("payment not applicable")
	ErrUpstream             = errors.New("upstream flight api failure")
)
