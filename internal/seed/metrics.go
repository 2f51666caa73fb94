package seed

import (
	"time"

	"github.com/blaisecz/wellness-forecast/internal/domain"
)

var (
	// ReportWeekStart and ReportWeekEnd bound the week the sample report covers.
	ReportWeekStart = time.Date(2025, time.September, 16, 0, 0, 0, 0, time.UTC)
	ReportWeekEnd   = time.Date(2025, time.September, 22, 0, 0, 0, 0, time.UTC)
)

var f = domain.Float

// Metrics returns the sample weekly report. Each call returns fresh copies.
func Metrics() []domain.MetricSeries {
	return []domain.MetricSeries{
		{
			ID:                 "sleep",
			Name:               "Sleep Quality",
			Unit:               "Score",
			UserScore:          "65",
			AvgScore:           "82",
			PreviousScore:      "78",
			Threshold:          &domain.Threshold{Low: 70, High: 95},
			Analysis:           "A sharp drop in sleep quality this week resulted in a score much lower than forecasted.",
			Warning:            "Score is below recommended range. Prioritizing consistent sleep is crucial for recovery.",
			DiscrepancyWarning: "Your sleep was much worse than the predicted recovery, indicating a persistent negative trend.",
			Recommendation:     "🌙 Establish a regular sleep schedule. Avoid caffeine after 4 p.m. Try relaxation routines (e.g., deep breathing, light reading).",
			History:            []float64{78, 80, 75, 79, 72, 76, 78, 65},
			PreviousForecast:   []*float64{nil, nil, nil, nil, nil, nil, f(77), f(78)},
			Position:           1,
		},
		{
			ID:               "activity",
			Name:             "Physical Activity",
			Unit:             "Score",
			UserScore:        "58",
			AvgScore:         "70",
			PreviousScore:    "60",
			Threshold:        &domain.Threshold{Low: 60, High: 95},
			Analysis:         "Your activity levels have slowly declined over the past few weeks and have now fallen just below the healthy range.",
			Warning:          "Activity score is below recommended range. Fatigue or changes in routine may be a factor.",
			Recommendation:   "🏃‍♂️ Go for light exercise such as a 20-30 min walk or stretching. Rebuild consistency gradually. Avoid overexertion.",
			History:          []float64{70, 68, 69, 65, 64, 62, 60, 58},
			PreviousForecast: []*float64{nil, nil, nil, nil, nil, f(63), f(61), f(59)},
			Position:         2,
		},
		{
			ID:               "words",
			Name:             "Words Used",
			Unit:             "Positivity Score",
			UserScore:        "71",
			AvgScore:         "75",
			PreviousScore:    "72",
			Threshold:        &domain.Threshold{Low: 70, High: 95},
			Analysis:         "Your positivity score, while still healthy, has continued a subtle downward trend over the last several weeks.",
			History:          []float64{78, 77, 78, 76, 75, 74, 72, 71},
			PreviousForecast: []*float64{nil, nil, nil, nil, nil, f(74), f(73), f(72)},
			Position:         3,
		},
		{
			ID:               "blood-pressure",
			Name:             "Blood Pressure",
			Unit:             "mmHg",
			UserScore:        "122/81",
			AvgScore:         "120/80",
			PreviousScore:    "121",
			Threshold:        &domain.Threshold{Low: 90, High: 120},
			Analysis:         "Your blood pressure has slightly increased this week, moving into the elevated range. This may be related to recent stress or changes in sleep.",
			Warning:          "Blood pressure is now in the elevated range. It's important to monitor this, especially after stressful periods.",
			Recommendation:   "🧘‍♂️ Practice deep breathing or short mindfulness sessions. Reduce salty or processed food. Take short breaks between work.",
			History:          []float64{120, 122, 119, 121, 118, 120, 121, 122},
			PreviousForecast: []*float64{nil, nil, nil, nil, nil, f(120), f(121), f(121)},
			Position:         4,
		},
	}
}
