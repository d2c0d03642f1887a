// Package validate checks generated artifacts before they are written:
// every PromQL expression must parse, and every metric it references must be
// one the service actually exports.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/ovbilous/priceboard/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail the run, warnings do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Dashboard checks every PromQL expression in a built dashboard against the
// known metric set.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.errorf("marshaling dashboard: %v", err)
		return res
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		res.errorf("remarshaling dashboard: %v", err)
		return res
	}

	for _, expr := range collectExprs(doc) {
		checkExpr(&res, expr, known)
	}
	return res
}

// Rules checks every expression in a PrometheusRule CR against the known
// metric set.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, group := range cr.Spec.Groups {
		for _, rule := range group.Rules {
			if rule.Expr == "" {
				res.errorf("rule %s%s has an empty expression", rule.Record, rule.Alert)
				continue
			}
			checkExpr(&res, rule.Expr, known)
		}
	}
	return res
}

// collectExprs walks a decoded JSON document for "expr" string values.
func collectExprs(doc any) []string {
	var exprs []string
	switch v := doc.(type) {
	case map[string]any:
		for key, val := range v {
			if key == "expr" {
				if s, ok := val.(string); ok && s != "" {
					exprs = append(exprs, s)
					continue
				}
			}
			exprs = append(exprs, collectExprs(val)...)
		}
	case []any:
		for _, item := range v {
			exprs = append(exprs, collectExprs(item)...)
		}
	}
	return exprs
}

func checkExpr(res *Result, q string, known map[string]bool) {
	expr, err := parser.ParseExpr(q)
	if err != nil {
		res.errorf("invalid PromQL %q: %v", q, err)
		return
	}

	//nolint:errcheck // the inspector never returns an error
	parser.Inspect(expr, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok {
			return nil
		}

		name := vs.Name
		if name == "" {
			for _, m := range vs.LabelMatchers {
				if m.Name == "__name__" {
					name = m.Value
				}
			}
		}
		if name == "" {
			return nil
		}

		if !known[name] && !known[stripHistogramSuffix(name)] {
			res.errorf("expression %q references unknown metric %q", q, name)
		}
		return nil
	})
}

// stripHistogramSuffix maps histogram series names back to their family name.
func stripHistogramSuffix(name string) string {
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}
