// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

/*
Package api provides the HTTP interface of the Basketminer server.

Routing uses chi with the go-chi/cors and go-chi/httprate middleware.
Handlers answer in the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "cached": true}
	}

# Endpoints

	GET  /api/v1/health              liveness plus model status
	GET  /api/v1/health/ready        503 until a global model is served
	POST /api/v1/mine                ad-hoc mining of posted transactions
	POST /api/v1/recommendations     next-item recommendations for a basket
	GET  /api/v1/rules               trained rules (segment, view, limit)
	GET  /api/v1/itemsets            trained itemsets (segment, min_size, limit)
	GET  /api/v1/stats               dataset and training status per segment
	POST /api/v1/model/train         202, queues a background training run
	GET  /metrics                    Prometheus exposition

# Error Codes

	VALIDATION_ERROR              400  request failed validation
	BAD_REQUEST                   400  malformed JSON or query parameter
	ALGORITHM_INVALID_PARAMETERS  400  mining precondition failed
	TOO_MANY_REQUESTS             429  rate limit or training throttle
	ALGORITHM_EXECUTION_FAILED    500  invariant violation or unexpected failure
	MODEL_NOT_TRAINED             503  no model has been trained yet
	SERVICE_UNAVAILABLE           503  background worker not running
	MINING_TIMEOUT                504  mining exceeded the request timeout

# Middleware

Applied in order: request ID with logging context, RealIP, Recoverer, CORS,
per-group rate limiting, security headers, Prometheus request metrics. The
ad-hoc /mine endpoint has its own stricter limit.
*/
package api
