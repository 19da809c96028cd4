// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/basketminer/internal/apriori"
	"github.com/tomtom215/basketminer/internal/recommend"
	"github.com/tomtom215/basketminer/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeValidation         = validation.ErrorCode
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeInvalidParameters  = "ALGORITHM_INVALID_PARAMETERS"
	ErrCodeExecutionFailed    = "ALGORITHM_EXECUTION_FAILED"
	ErrCodeModelNotTrained    = "MODEL_NOT_TRAINED"
	ErrCodeTimeout            = "MINING_TIMEOUT"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// respondEngineError maps a mining or recommendation failure to its status
// and error code.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *apriori.PreconditionError
	switch {
	case errors.As(err, &pe):
		respondErrorDetails(w, r, http.StatusBadRequest, ErrCodeInvalidParameters, pe.Error(), map[string]interface{}{
			"parameter": pe.Parameter,
			"expected":  pe.Expected,
			"got":       fmt.Sprint(pe.Got),
		}, nil)

	case errors.Is(err, recommend.ErrModelNotTrained):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeModelNotTrained,
			"No model has been trained yet, retry after training completes", nil)

	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, ErrCodeTimeout, "Mining exceeded the request timeout", err)

	case errors.Is(err, context.Canceled):
		// The client is gone; the status is only recorded in metrics.
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request canceled", nil)

	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeExecutionFailed, "Mining failed", err)
	}
}
