package llm

import (
	"fmt"
	"strings"
)

// analysisPrompt asks the model for a structured markdown analysis of
// an operations document. The wording deliberately requests "Source:
// X%" lines and scope classifications so the downstream extractor has
// something regular to parse.
func analysisPrompt(mineName string) string {
	mineName = displayName(mineName)
	return fmt.Sprintf(`You are a mining emission analysis specialist. Analyze this mining operations document for %[1]s mine and provide:

# Mining Analysis for %[1]s Mine (Sources and Percentage of Emissions by Sources)

Extract and calculate the percentage distribution of greenhouse gas emissions by source specifically for %[1]s mine. Focus on:
- Heavy machinery and equipment emissions at %[1]s
- Transportation vehicles (trucks, haulers) at %[1]s
- Electricity consumption from grid for %[1]s
- On-site power generation at %[1]s
- Ventilation systems in %[1]s
- Blasting operations at %[1]s
- Coal processing activities at %[1]s
- Fugitive emissions from %[1]s
- Other identified sources specific to %[1]s

Present as: "Source: X%%" and mention it's for %[1]s mine.

# Classification of Sources for %[1]s Mine

Categorize the emission sources into these types specifically for %[1]s:
- Scope 1 Emissions (Direct emissions from owned/controlled sources at %[1]s)
- Scope 2 Emissions (Indirect emissions from purchased electricity/steam for %[1]s)
- Scope 3 Emissions (Other indirect emissions in value chain of %[1]s)
- Stationary Combustion at %[1]s
- Mobile Combustion at %[1]s
- Process Emissions at %[1]s
- Fugitive Emissions from %[1]s

For each classification, list the specific sources that fall under that category at %[1]s mine.

Provide the analysis in clear, structured markdown format with proper headings, specifically mentioning %[1]s throughout.`, mineName)
}

// suggestionsPrompt asks for a categorized recommendation list based on
// a prior analysis. Markdown category headings and action-verb bullets
// are what the insight parser expects.
func suggestionsPrompt(mineName, analysis string) string {
	mineName = displayName(mineName)
	return fmt.Sprintf(`Based on the following mining emission analysis for %[1]s mine, generate a comprehensive and detailed list of 30 to 40 actionable, evidence-based recommendations to reduce greenhouse gas emissions and improve overall sustainability performance.

Each recommendation must be:
- Specific to %[1]s's operations, mining method, and emission profile.
- Technically sound, realistic, and measurable (include quantitative goals where possible).
- Grouped under relevant categories. Choose only those that apply, but feel free to introduce new categories as needed.

Potential categories (choose whichever fit best or add your own):
1. Operational Efficiency & Equipment Optimization
2. Energy Transition & Renewable Integration
3. Methane & Fugitive Emission Control
4. Carbon Capture, Utilization & Storage
5. Land Use & Reforestation
6. Water & Dust Management
7. Workforce Training & Behavioral Change
8. Environmental Management & Rehabilitation
9. Policy Compliance & Reporting
10. Circular Economy & Resource Recovery
11. Logistics & Transport Optimization
12. Community & Ecosystem Impact Reduction
13. Digital Transformation & Smart Monitoring
14. Research, Innovation & Partnerships

Formatting and structure:
- Use clear Markdown headings for each category.
- Provide 3 to 5 concrete recommendations under each chosen category.
- Each point should start with an action verb (e.g. Implement, Upgrade, Monitor, Adopt).
- Wherever relevant, add expected outcomes (e.g. "reduces diesel use by 12%%" or "saves 400 MWh/year").
- Avoid generic advice. Tailor everything to %[1]s's operational scale, mining type (e.g. underground, surface), and emission data trends.

If the data allows, start with a short "Emission Hotspot Summary" highlighting key sources of emissions from the analysis before the recommendations.

--- MINING EMISSION ANALYSIS FOR %[2]s MINE ---
%[3]s
--- END ANALYSIS ---`, mineName, strings.ToUpper(mineName), analysis)
}

func displayName(mineName string) string {
	mineName = strings.TrimSpace(mineName)
	if mineName == "" {
		return "General Mining Operations"
	}
	return mineName
}
