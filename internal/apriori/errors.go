// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package apriori

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTransactions is wrapped by the PreconditionError returned when
	// a run receives no transactions.
	ErrEmptyTransactions = errors.New("transactions must be a non-empty list")

	// ErrZeroSupport is wrapped by the InvariantError returned when a rule
	// side has zero support, which cannot happen for itemsets that were
	// mined from the same transactions.
	ErrZeroSupport = errors.New("itemset support is zero")
)

// PreconditionError reports an invalid caller-supplied input. It is fatal for
// the run and never retried.
type PreconditionError struct {
	Parameter string
	Expected  string
	Got       interface{}
	Err       error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("invalid %s: expected %s, got %v", e.Parameter, e.Expected, e.Got)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// InvariantError reports an internal logic fault, such as a zero antecedent
// support during rule generation.
type InvariantError struct {
	Detail string
	Err    error
}

func (e *InvariantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invariant violated: %s: %v", e.Detail, e.Err)
	}
	return "invariant violated: " + e.Detail
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// IsPrecondition reports whether err (or anything it wraps) is a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// IsInvariant reports whether err (or anything it wraps) is an InvariantError.
func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

func newPrecondition(param, expected string, got interface{}) *PreconditionError {
	return &PreconditionError{Parameter: param, Expected: expected, Got: got}
}
