package billing

import (
	"github.com/zeabis/zeabis/internal/domain"
)

// Summary backs the tracker's summary cards.
type Summary struct {
	TotalPOHours     float64 `json:"totalPoHours"`
	TotalBurnedHours float64 `json:"totalBurnedHours"`
	AvgBurnRate      float64 `json:"avgBurnRate"`
	TotalEmployees   int     `json:"totalEmployees"`
	TotalPOs         int     `json:"totalPos"`
	ActiveProjects   int     `json:"activeProjects"`
}

// Summarize aggregates across rows. AvgBurnRate is the mean of the rows'
// burned percentages, 0 for no rows. TotalEmployees counts employee rows, so
// someone on two projects counts twice.
func Summarize(rows []ProjectBilling) Summary {
	var s Summary
	var burnSum float64
	for _, r := range rows {
		t := r.Totals()
		s.TotalPOHours += r.POHours
		s.TotalBurnedHours += t.TotalBurnedHours
		burnSum += t.BurnedPercentage
		s.TotalEmployees += len(r.Employees)
		if r.ProjectStatus == domain.ProjectActive {
			s.ActiveProjects++
		}
	}
	s.TotalPOs = len(rows)
	if len(rows) > 0 {
		s.AvgBurnRate = burnSum / float64(len(rows))
	}
	return s
}

// MonthOverview sums hours per month across rows, in the window order of
// the first row. Buckets are matched by key, so rows with a shorter window
// simply contribute nothing to the missing months.
func MonthOverview(rows []ProjectBilling) []MonthBucket {
	if len(rows) == 0 {
		return nil
	}
	out := make([]MonthBucket, len(rows[0].Months))
	index := make(map[string]int, len(out))
	for i, m := range rows[0].Months {
		out[i] = MonthBucket{Key: m.Key, Month: m.Month}
		index[m.Key] = i
	}
	for _, r := range rows {
		for _, m := range r.Months {
			if i, ok := index[m.Key]; ok {
				out[i].Hours += m.Hours
				out[i].Amount = out[i].Amount.Add(m.Amount)
			}
		}
	}
	return out
}
