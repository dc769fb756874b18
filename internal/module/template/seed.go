package template

// systemTemplates are the templates shipped with the service. Seeding
// is idempotent: each is inserted only if no system template with the
// same name exists yet.
func systemTemplates() []*Template {
	return []*Template{
		{
			Name:         "Web application 5SB",
			Description:  "Five-sentence brief template for web application projects",
			Category:     CategoryWebDevelopment,
			TemplateType: TypeBrief,
			Content: map[string]any{
				"purpose":          "Build a web application that delivers [core value] to its users.",
				"success_criteria": "[Key features] implemented, [performance target] met, user satisfaction at or above [target score]",
				"constraints":      "Budget [amount], timeline [duration], tech stack [technologies], team size [headcount]",
				"priority":         "Ship MVP features first, then add secondary features incrementally",
				"validation":       "User testing, performance testing, security review, code review",
			},
		},
		{
			Name:         "Web application DoD",
			Description:  "Definition-of-done template for web application projects",
			Category:     CategoryWebDevelopment,
			TemplateType: TypeDoD,
			Content: map[string]any{
				"deliverable_formats": "Deployed web application, source code, API docs, user manual",
				"mandatory_checks": []string{
					"All core features working",
					"Responsive design applied",
					"Cross-browser compatibility verified",
					"Security vulnerability scan passed",
					"Performance tuning finished",
				},
				"quality_bar":  "Page load under 3 seconds, mobile accessibility at AA level",
				"verification": "Automated test coverage above 80%, manual test pass complete",
				"version_tag":  "v1.0",
			},
		},
		{
			Name:         "Data analysis project 5SB",
			Description:  "Template for data analysis and insight projects",
			Category:     CategoryDataAnalysis,
			TemplateType: TypeBrief,
			Content: map[string]any{
				"purpose":          "Analyze [dataset] to surface insights toward [business goal].",
				"success_criteria": "[N] key questions answered, [N] actionable recommendations delivered, confidence above [percent]",
				"constraints":      "Data quality limits, analysis window [duration], tooling [tools]",
				"priority":         "Core KPI analysis, then detailed patterns, then predictive modeling",
				"validation":       "Statistical significance checks, domain expert review, reproducibility check",
			},
		},
		{
			Name:         "Research project 5SB",
			Description:  "Template for research and investigation projects",
			Category:     CategoryResearch,
			TemplateType: TypeBrief,
			Content: map[string]any{
				"purpose":          "Run a systematic study of [topic] to reach [research goal].",
				"success_criteria": "Hypotheses tested, paper or report written, findings presented",
				"constraints":      "Research window [duration], budget [amount], participants [headcount], ethics constraints",
				"priority":         "Literature review, study design, data collection, analysis, findings",
				"validation":       "Peer review, statistical validation, generalizability assessment",
			},
		},
		{
			Name:         "Marketing campaign 5SB",
			Description:  "Template for planning and running marketing campaigns",
			Category:     CategoryMarketing,
			TemplateType: TypeBrief,
			Content: map[string]any{
				"purpose":          "Deliver [key message] to [target audience] toward [business goal].",
				"success_criteria": "Reach [percent], conversion [percent], ROI at or above [multiple]",
				"constraints":      "Marketing budget [amount], campaign window [duration], channel limits",
				"priority":         "Brand awareness first, then lead generation, then conversion",
				"validation":       "A/B testing, performance metric monitoring, customer feedback",
			},
		},
	}
}
