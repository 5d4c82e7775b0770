package chart

// Dashboard is the pair of layouts produced by one [RenderDashboard] call.
type Dashboard struct {
	Categories BarChart `json:"categories"`
	Severities Donut    `json:"severities"`
}

// RenderDashboard draws both charts. The two renderers share no state: a
// missing surface or degenerate dataset on one side never affects the other.
func RenderDashboard(categories, severities Surface, stats Stats, opts ...Option) Dashboard {
	return Dashboard{
		Categories: RenderBars(categories, stats.Categories, opts...),
		Severities: RenderDonut(severities, stats.Severities, opts...),
	}
}
