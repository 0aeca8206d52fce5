package engine

import (
	"fmt"
	"math/rand"
	"time"

	"jobhunter/internal/models"
)

// jobTemplate is one of the posting shapes the simulated boards emit.
type jobTemplate struct {
	title       string
	description string
	keywords    []string
}

// Simulated board inventory. Real board integrations would replace this
// with API clients; the rest of the pipeline is agnostic to where
// postings come from.
var (
	simCompanies = []string{
		"Siemens Energy", "Vattenfall", "EnBW", "E.ON", "RWE", "Fraunhofer ISE",
		"Bosch", "BMW", "Volkswagen", "SAP", "Deutsche Telekom", "Infineon",
		"Ørsted", "Vestas", "SMA Solar", "Sonnen", "Enphase", "Tesla Energy",
		"Google DeepMind", "Microsoft Research", "Amazon AWS", "IBM Research",
	}

	simLocations = []string{
		"Berlin, Germany", "Munich, Germany", "Hamburg, Germany", "Frankfurt, Germany",
		"Stuttgart, Germany", "Offenburg, Germany", "Freiburg, Germany", "Cologne, Germany",
		"Düsseldorf, Germany", "Nuremberg, Germany", "Remote, Germany",
	}

	simPostingAges = []int{1, 2, 3, 4, 5, 6, 8, 12, 18, 24, 36, 48}

	simTemplates = []jobTemplate{
		{
			title:       "Senior Data Scientist - Energy Analytics",
			description: "We are looking for a Senior Data Scientist to join our Energy Analytics team. You will work on predictive modeling, time series forecasting, and anomaly detection for power systems. Experience with Python, TensorFlow, and energy domain knowledge required.",
			keywords:    []string{"data scientist", "energy", "python", "tensorflow", "time series", "forecasting", "anomaly detection"},
		},
		{
			title:       "Machine Learning Engineer - Renewable Energy",
			description: "Join our ML team to develop cutting-edge algorithms for renewable energy optimization. Work with large-scale datasets, implement LSTM models for load forecasting, and contribute to our smart grid solutions.",
			keywords:    []string{"machine learning", "renewable energy", "lstm", "forecasting", "smart grid", "python"},
		},
		{
			title:       "Energy Systems Analyst",
			description: "Analyze power systems data, develop predictive models for grid operations, and support decision-making with data-driven insights. Strong background in energy economics and data analysis required.",
			keywords:    []string{"energy systems", "analyst", "power systems", "data analysis", "grid operations"},
		},
		{
			title:       "Data Engineer - Power Systems",
			description: "Build and maintain data pipelines for power systems monitoring. Work with time-series databases like InfluxDB, create dashboards in Grafana, and ensure data quality for ML models.",
			keywords:    []string{"data engineer", "power systems", "influxdb", "grafana", "data pipeline", "python"},
		},
		{
			title:       "Research Scientist - Battery Analytics",
			description: "Conduct research on battery degradation prediction using machine learning. Develop models for state-of-health estimation and publish findings in peer-reviewed journals.",
			keywords:    []string{"research scientist", "battery", "machine learning", "prediction", "deep learning"},
		},
		{
			title:       "Power Grid Optimization Engineer",
			description: "Optimize power grid operations using advanced analytics and ML. Work on demand forecasting, renewable integration, and grid stability analysis.",
			keywords:    []string{"power grid", "optimization", "analytics", "forecasting", "renewable", "machine learning"},
		},
		{
			title:       "Data Analyst - Sustainability",
			description: "Analyze sustainability metrics, track carbon emissions, and develop dashboards for environmental reporting. SQL and Python skills required.",
			keywords:    []string{"data analyst", "sustainability", "carbon", "emissions", "sql", "python", "visualization"},
		},
		{
			title:       "AI Engineer - Smart Grid",
			description: "Develop AI solutions for smart grid applications including fault detection, load balancing, and predictive maintenance. Deep learning and power systems knowledge preferred.",
			keywords:    []string{"ai engineer", "smart grid", "deep learning", "fault detection", "predictive maintenance"},
		},
		{
			title:       "Energy Data Scientist",
			description: "Apply data science techniques to energy sector challenges. Build forecasting models, analyze consumption patterns, and support renewable energy integration projects.",
			keywords:    []string{"data scientist", "energy", "forecasting", "consumption", "renewable energy", "python"},
		},
		{
			title:       "Automation Engineer - Energy Systems",
			description: "Develop automation solutions for energy systems monitoring and control. Experience with PLC programming, SCADA systems, and Python scripting required.",
			keywords:    []string{"automation", "energy systems", "plc", "scada", "python", "monitoring"},
		},
	}
)

const simulatedJobCount = 30

// generateSimulatedJobs produces one batch of postings across all boards,
// cycling through the templates with randomized company, location, source
// and posting age.
func generateSimulatedJobs(rng *rand.Rand) []models.Job {
	now := time.Now()
	batch := now.UnixMilli()

	jobs := make([]models.Job, 0, simulatedJobCount)
	for i := 0; i < simulatedJobCount; i++ {
		tmpl := simTemplates[i%len(simTemplates)]
		source := models.Sources[rng.Intn(len(models.Sources))]
		hoursAgo := simPostingAges[rng.Intn(len(simPostingAges))]
		postedAt := now.Add(-time.Duration(hoursAgo) * time.Hour)

		salary := ""
		if rng.Intn(2) == 0 {
			salary = fmt.Sprintf("€%dk - €%dk", 60+rng.Intn(60), 90+rng.Intn(40))
		}
		jobType := "Full-time"
		if rng.Intn(10) < 3 {
			jobType = "Contract"
		}

		jobs = append(jobs, models.Job{
			ExternalID:   fmt.Sprintf("%s-%d-%d", source, batch, i),
			Source:       source,
			Title:        tmpl.title,
			Company:      simCompanies[rng.Intn(len(simCompanies))],
			Location:     simLocations[rng.Intn(len(simLocations))],
			Description:  tmpl.description,
			Requirements: "Bachelor's or Master's degree in relevant field. 3+ years of experience.",
			Salary:       salary,
			JobType:      jobType,
			URL:          fmt.Sprintf("https://example.com/jobs/%s/%d", source, i),
			PostedAt:     &postedAt,
			IsActive:     true,
			Keywords:     tmpl.keywords,
		})
	}

	return jobs
}
