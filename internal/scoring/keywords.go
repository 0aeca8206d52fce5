package scoring

// Static CV-profile keyword tiers. A hit in a higher tier is worth more
// points; totals are clamped to 100.
var (
	highPriorityKeywords = []string{
		"data scientist", "data science", "energy systems", "power systems",
		"machine learning", "ml engineer", "time series", "forecasting",
		"anomaly detection", "python", "renewable energy", "grid", "voltage",
		"lstm", "tensorflow", "pandas", "numpy", "deep learning", "neural network",
		"predictive modeling", "data analysis", "energy analyst", "power analyst",
	}

	mediumPriorityKeywords = []string{
		"data analyst", "data engineer", "automation", "research", "analyst",
		"modeling", "visualization", "sql", "power", "energy", "electricity",
		"smart grid", "wind", "solar", "battery", "storage", "sustainability",
		"climate", "carbon", "emissions", "efficiency", "optimization",
		"statistics", "matlab", "grafana", "influxdb", "scikit-learn",
	}

	lowPriorityKeywords = []string{
		"engineer", "scientist", "researcher", "developer", "consultant",
		"manager", "lead", "senior", "junior", "intern", "student",
	}
)

// Points per keyword hit by tier, and per matching user skill.
const (
	highPriorityPoints   = 10
	mediumPriorityPoints = 5
	lowPriorityPoints    = 2
	userSkillPoints      = 8
)
