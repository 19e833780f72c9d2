// Package stats derives summary statistics from the attempt history.
//
// Everything here is a pure function of its inputs; callers recompute the
// whole Statistics value after every mutation instead of patching it.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozcitizen/backend/internal/domain/attempt"
	"github.com/ozcitizen/backend/internal/domain/category"
)

// DayLayout is the calendar-day key format used by the activity histogram.
const DayLayout = "2006-01-02"

// HistogramDays is the width of the recent-activity window, today included.
const HistogramDays = 7

// DayActivity is the number of questions answered on one calendar day.
type DayActivity struct {
	Questions int `json:"questions"`
	Correct   int `json:"correct"`
}

// Statistics is the flat summary shown on the progress screen.
type Statistics struct {
	TotalTests     int                      `json:"totalTests"`
	TotalQuestions int                      `json:"totalQuestions"`
	CorrectAnswers int                      `json:"correctAnswers"`
	AverageScore   float64                  `json:"averageScore"`
	BestScore      float64                  `json:"bestScore"`
	PassRate       float64                  `json:"passRate"`
	Streak         int                      `json:"streak"`
	Last7Days      map[string]DayActivity   `json:"last7Days"`
	ValuesStats    category.Stat            `json:"valuesStats"`
	CategoryStats  map[string]category.Stat `json:"categoryStats"`
}

// Recompute reduces the attempt history into Statistics. Calendar days are
// taken in loc; now decides which days count as today and the last week.
func Recompute(scores []attempt.Record, categoryStats map[string]category.Stat, now time.Time, loc *time.Location) Statistics {
	if loc == nil {
		loc = time.Local
	}

	st := Statistics{
		TotalTests:    len(scores),
		Last7Days:     emptyWindow(now, loc),
		CategoryStats: categoryStats,
	}
	if st.CategoryStats == nil {
		st.CategoryStats = map[string]category.Stat{}
	}

	passed := 0
	days := make(map[string]bool, len(scores))
	for _, rec := range scores {
		st.TotalQuestions += rec.Total
		st.CorrectAnswers += rec.Score
		if rec.Passed {
			passed++
		}
		if rec.Total > 0 {
			pct := float64(rec.Score) / float64(rec.Total) * 100
			if pct > st.BestScore {
				st.BestScore = pct
			}
		}

		t := rec.Time()
		if t.IsZero() {
			continue
		}
		day := t.In(loc).Format(DayLayout)
		days[day] = true
		if bucket, ok := st.Last7Days[day]; ok {
			bucket.Questions += rec.Total
			bucket.Correct += rec.Score
			st.Last7Days[day] = bucket
		}
	}

	if st.TotalQuestions > 0 {
		st.AverageScore = round2(float64(st.CorrectAnswers) / float64(st.TotalQuestions) * 100)
	}
	if len(scores) > 0 {
		st.PassRate = round2(float64(passed) / float64(len(scores)) * 100)
	}
	st.Streak = Streak(days, now, loc)
	st.ValuesStats = st.CategoryStats[category.Values]

	return st
}

// Streak counts consecutive calendar days with activity, ending today or,
// when nothing has been recorded today yet, ending yesterday. days holds
// DayLayout keys in loc.
func Streak(days map[string]bool, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	today := civilNoon(now, loc)
	yesterday := today.AddDate(0, 0, -1)

	var anchor time.Time
	streak := 0
	switch {
	case days[today.Format(DayLayout)]:
		streak = 1
		anchor = yesterday
	case days[yesterday.Format(DayLayout)]:
		anchor = yesterday
	default:
		return 0
	}

	for d := anchor; days[d.Format(DayLayout)]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

func emptyWindow(now time.Time, loc *time.Location) map[string]DayActivity {
	window := make(map[string]DayActivity, HistogramDays)
	today := civilNoon(now, loc)
	for i := 0; i < HistogramDays; i++ {
		window[today.AddDate(0, 0, -i).Format(DayLayout)] = DayActivity{}
	}
	return window
}

// civilNoon pins t to noon of its calendar day in loc so that day
// arithmetic never trips over a DST transition.
func civilNoon(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc)
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
