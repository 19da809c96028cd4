// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

// Command mine runs one Apriori mining pass over a dataset and prints the
// result as JSON.
//
//	mine -source synthetic -count 1000 -seed 42 -min-support 0.05
//	mine -source csv -path baskets.csv -basket bread,milk -top-n 3
//	mine -source duckdb -path shop.duckdb -table baskets -actionable
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/tomtom215/basketminer/internal/apriori"
	"github.com/tomtom215/basketminer/internal/config"
	"github.com/tomtom215/basketminer/internal/dataset"
	"github.com/tomtom215/basketminer/internal/logging"
	"github.com/tomtom215/basketminer/internal/validation"
)

// output is the printed document.
type output struct {
	*apriori.Result
	Source          string                    `json:"source"`
	Options         apriori.Options           `json:"options"`
	Actionable      *apriori.ActionableFilter `json:"actionable,omitempty"`
	Recommendations []apriori.Recommendation  `json:"recommendations,omitempty"`
}

type options struct {
	dataset    config.DatasetConfig
	mining     apriori.Options
	basket     []string
	topN       int
	actionable bool
	pretty     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Init(logging.Config{Level: "warn", Format: "console", Output: os.Stderr})

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "mine:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, w io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	source, closeSource, err := dataset.Open(ctx, opts.dataset)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeSource(); cerr != nil {
			logging.Warn().Err(cerr).Msg("close dataset")
		}
	}()

	baskets, err := source.GetBaskets(ctx)
	if err != nil {
		return fmt.Errorf("load baskets: %w", err)
	}
	txs := make([]apriori.Transaction, len(baskets))
	for i, b := range baskets {
		txs[i] = apriori.Transaction(b.Items)
	}

	result, err := apriori.Run(ctx, txs, opts.mining)
	if err != nil {
		return err
	}

	out := output{
		Result:  result,
		Source:  source.Name(),
		Options: opts.mining,
	}

	rules := result.AssociationRules
	if opts.actionable {
		filter := apriori.DefaultActionableFilter()
		rules = filter.Apply(rules)
		out.AssociationRules = rules
		out.Actionable = &filter
	}
	if len(opts.basket) > 0 {
		out.Recommendations = apriori.Recommend(opts.basket, rules, opts.topN)
	}

	enc := json.NewEncoder(w)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("mine", flag.ContinueOnError)

	defaults := apriori.DefaultOptions()
	o := &options{}
	var basket string

	fs.StringVar(&o.dataset.Source, "source", config.SourceSynthetic, "dataset source: synthetic, csv or duckdb")
	fs.StringVar(&o.dataset.Path, "path", "", "CSV file or DuckDB database file")
	fs.StringVar(&o.dataset.Table, "table", "baskets", "DuckDB table with basket_id, segment and item columns")
	fs.IntVar(&o.dataset.SyntheticCount, "count", 1000, "number of synthetic baskets")
	fs.Uint64Var(&o.dataset.Seed, "seed", 42, "synthetic generator seed")
	fs.Float64Var(&o.mining.MinSupport, "min-support", defaults.MinSupport, "minimum itemset support in (0, 1]")
	fs.Float64Var(&o.mining.MinConfidence, "min-confidence", defaults.MinConfidence, "minimum rule confidence in [0, 1]")
	fs.Float64Var(&o.mining.MinLift, "min-lift", defaults.MinLift, "minimum rule lift")
	fs.StringVar(&basket, "basket", "", "comma-separated basket to recommend for")
	fs.IntVar(&o.topN, "top-n", apriori.DefaultTopN, "number of recommendations")
	fs.BoolVar(&o.actionable, "actionable", false, "keep only rules passing the default actionable filter")
	fs.BoolVar(&o.pretty, "pretty", true, "indent the JSON output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	switch o.dataset.Source {
	case config.SourceSynthetic:
		if o.dataset.SyntheticCount < 1 {
			return nil, fmt.Errorf("-count must be at least 1, got %d", o.dataset.SyntheticCount)
		}
	case config.SourceCSV, config.SourceDuckDB:
		if o.dataset.Path == "" {
			return nil, fmt.Errorf("-path is required for source %s", o.dataset.Source)
		}
	default:
		return nil, fmt.Errorf("unknown -source %q", o.dataset.Source)
	}

	if err := o.mining.Validate(); err != nil {
		return nil, err
	}
	if o.topN < 1 {
		return nil, fmt.Errorf("-top-n must be at least 1, got %d", o.topN)
	}

	for _, item := range strings.Split(basket, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !validation.IsValidItemID(item) {
			return nil, fmt.Errorf("invalid basket item %q", item)
		}
		o.basket = append(o.basket, item)
	}

	return o, nil
}
