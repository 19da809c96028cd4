// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

/*
Package models defines the HTTP request and response structures.

Model Categories:

1. Envelope:
  - APIResponse: standard response wrapper
  - APIError: error code, message and details
  - Metadata: timestamp, query time, cache hit, model version, request ID

2. Mining and recommendation:
  - MineRequest / MineResponse: ad-hoc mining of posted transactions
  - RecommendRequest / RecommendResponse: scoring against the trained model
  - RulesResponse, ItemsetsResponse: trained model listings
  - TrainResponse: background training trigger

3. Health:
  - HealthStatus, ReadyStatus

Request structs carry go-playground/validator tags, including the custom
itemid and segment tags registered by the validation package.

JSON Marshaling:

Envelope and request fields are snake_case. Mining results embedded in
responses (apriori.Result, rules, itemsets, recommendations) keep the
camelCase names of the mining core.

Usage Example:

	var req models.MineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
	    return err
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
	    return verr
	}
	result, err := apriori.Run(ctx, req.TransactionList(), req.Options(defaults))
*/
package models
