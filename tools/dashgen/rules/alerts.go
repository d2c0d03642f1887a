package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// priceboard operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "priceboard-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "priceboard-alerts",
					Rules: []Rule{
						{
							Alert: "PriceboardDown",
							Expr:  `absent(up{job="priceboard"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Priceboard is down",
								"description": "The priceboard job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "PriceboardReadinessDown",
							Expr:  `priceboard_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Priceboard readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "PriceboardHighErrorRate",
							Expr:  `priceboard:http_errors:rate5m / priceboard:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on priceboard",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "PriceboardUploadErrors",
							Expr:  `priceboard:upload_errors:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Upload rejections detected",
								"description": "Spreadsheet uploads have been rejected for more than 5 minutes.",
							},
						},
						{
							Alert: "PriceboardRepricingErrors",
							Expr:  `priceboard:repricing_errors:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Repricing runs are failing",
								"description": "The repricing pipeline has been producing errors for more than 5 minutes.",
							},
						},
						{
							Alert: "PriceboardBudgetHigh",
							Expr:  `priceboard_repricing_daily_usage > 4000`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Repricing budget usage is above 80%",
								"description": "Daily repricing usage has exceeded 4000 runs (budget is 5000).",
							},
						},
						{
							Alert: "PriceboardBudgetExhausted",
							Expr:  `increase(priceboard_repricing_daily_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Repricing daily budget has been exhausted",
								"description": "The daily repricing budget is spent. Further runs are rejected until the window rolls over.",
							},
						},
						{
							Alert: "PriceboardNotificationFailures",
							Expr:  `increase(priceboard_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more repricing notifications (Discord webhooks) have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
