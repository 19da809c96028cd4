// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package models

import (
	"time"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope of every API body. A recommendation answer:
//
//	{
//	  "status": "success",
//	  "data": {"segment": "family", "recommendations": [...]},
//	  "metadata": {"timestamp": "2026-10-18T12:00:00Z", "model_version": 4, "cached": true}
//	}
//
// Failures carry StatusError, a null Data and the Error body.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how an answer was produced. ModelVersion is the
// training run that served a recommendation; ad-hoc mining leaves it zero.
type Metadata struct {
	Timestamp    time.Time `json:"timestamp"`
	QueryTimeMS  int64     `json:"query_time_ms,omitempty"`
	Cached       bool      `json:"cached,omitempty"`
	ModelVersion int64     `json:"model_version,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
}

// APIError is the error body; Code is one of the api package's ErrCode
// values or VALIDATION_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewSuccessResponse wraps data, stamping meta with the current time.
func NewSuccessResponse(data interface{}, meta Metadata) *APIResponse {
	meta.Timestamp = time.Now()
	return &APIResponse{Status: StatusSuccess, Data: data, Metadata: meta}
}

// NewErrorResponse builds a failure envelope for the request requestID.
func NewErrorResponse(requestID string, apiErr *APIError) *APIResponse {
	return &APIResponse{
		Status:   StatusError,
		Metadata: Metadata{Timestamp: time.Now(), RequestID: requestID},
		Error:    apiErr,
	}
}
