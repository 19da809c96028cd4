// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

/*
Package middleware provides the HTTP middleware the api router installs in
front of every handler.

Key Components:

  - RequestID: reuses or generates X-Request-ID and stores it on the context
    for structured logging (logging.Ctx) and chi's middleware.GetReqID
  - PrometheusMetrics: request count, latency histogram and in-flight gauge,
    labelled by chi route pattern

Both have the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

Route-pattern labels keep the endpoint label bounded. A request for
/api/v1/rules?segment=family is recorded as /api/v1/rules, and unknown
paths share the single "unmatched" label.
*/
package middleware
