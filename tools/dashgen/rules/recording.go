package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "priceboard-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "priceboard-recording",
					Rules: []Rule{
						{
							Record: "priceboard:http_requests:rate5m",
							Expr:   `sum(rate(priceboard_http_requests_total[5m]))`,
						},
						{
							Record: "priceboard:http_errors:rate5m",
							Expr:   `sum(rate(priceboard_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "priceboard:upload_rows:rate5m",
							Expr:   `sum(rate(priceboard_upload_rows_total[5m]))`,
						},
						{
							Record: "priceboard:upload_errors:rate5m",
							Expr:   `rate(priceboard_upload_errors_total[5m])`,
						},
						{
							Record: "priceboard:repricing_runs:rate5m",
							Expr:   `rate(priceboard_repricing_runs_total[5m])`,
						},
						{
							Record: "priceboard:repricing_errors:rate5m",
							Expr:   `rate(priceboard_repricing_errors_total[5m])`,
						},
					},
				},
			},
		},
	}
}
