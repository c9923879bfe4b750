// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package filter selects chip variants with boolean expressions over their
// characteristics, e.g., "L3CacheSizeMBPerChannel > 0 && Class == 'GFX10_3'".
// Every field of asic.Characteristics is available by name.
package filter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/casbin/govaluate"

	"gpuspect/internal/asic"
)

// Filter is a parsed expression. It is safe for concurrent use.
type Filter struct {
	Expression string
	llvmMajor  int
	evaluable  *govaluate.EvaluableExpression
}

// New parses the expression once so that it can be evaluated against many
// variants. llvmMajor selects the LLVM release used for the LLVM fields.
func New(expression string, llvmMajor int) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("filter expression cannot be empty")
	}
	evaluable, err := govaluate.NewEvaluableExpressionWithFunctions(expression, getEvaluatorFunctions())
	if err != nil {
		slog.Error("failed to create evaluable expression for filter", slog.String("error", err.Error()), slog.String("expression", expression))
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}
	// reject unknown variables up front rather than on every evaluation
	parameters := asic.GetCharacteristics(asic.ChipUnknown, llvmMajor).Parameters()
	for _, variable := range evaluable.Vars() {
		if _, ok := parameters[variable]; !ok {
			return nil, fmt.Errorf("unknown field in filter expression: %s", variable)
		}
	}
	return &Filter{Expression: expression, llvmMajor: llvmMajor, evaluable: evaluable}, nil
}

// Match reports whether the variant satisfies the expression.
func (f *Filter) Match(v asic.Variant) (bool, error) {
	result, err := f.evaluable.Evaluate(asic.GetCharacteristics(v, f.llvmMajor).Parameters())
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter %q for %s: %w", f.Expression, v.Name(), err)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q is not a boolean expression, got %v", f.Expression, result)
	}
	return matched, nil
}

// Apply returns the variants that satisfy the expression, in input order.
func (f *Filter) Apply(variants []asic.Variant) ([]asic.Variant, error) {
	matched := []asic.Variant{}
	for _, v := range variants {
		ok, err := f.Match(v)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

// getEvaluatorFunctions defines functions that can be called in filter expressions
func getEvaluatorFunctions() (functions map[string]govaluate.ExpressionFunction) {
	functions = make(map[string]govaluate.ExpressionFunction)
	// atLeast(Rank, 'NAVI21') is true for NAVI21 and every later variant
	functions["atLeast"] = func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("atLeast expects a rank and a variant name")
		}
		return compareRank(args[0], args[1], func(rank, other int) bool { return rank >= other })
	}
	functions["atMost"] = func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("atMost expects a rank and a variant name")
		}
		return compareRank(args[0], args[1], func(rank, other int) bool { return rank <= other })
	}
	functions["KiB"] = func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("KiB expects one argument")
		}
		n, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("KiB expects a number, got %v", args[0])
		}
		return n * asic.KiB, nil
	}
	return
}

func compareRank(rankArg, nameArg any, cmp func(int, int) bool) (any, error) {
	rank, ok := rankArg.(float64)
	if !ok {
		return nil, fmt.Errorf("expected a rank, got %v", rankArg)
	}
	name, ok := nameArg.(string)
	if !ok {
		return nil, fmt.Errorf("expected a variant name, got %v", nameArg)
	}
	other, err := asic.GetVariantByName(name)
	if err != nil {
		return nil, err
	}
	return cmp(int(rank), other.Rank()), nil
}
