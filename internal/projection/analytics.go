package projection

import (
	"sort"
	"time"

	"github.com/andy/agrione/internal/domain"
)

// maxSeriesDays caps the daily sales series at the most recent active days.
const maxSeriesDays = 7

// Summary aggregates sales metrics over a (possibly date-filtered) invoice
// subset, except for the month-over-month figures which always come from
// the full list.
type Summary struct {
	TotalSales float64

	// Status counts over the subset.
	Pending   int
	Delivered int
	Collected int

	// Sales totals per customer category, one bucket per category even
	// when zero.
	ByCategory map[domain.CustomerCategory]float64

	CurrentMonthTotal  float64
	PreviousMonthTotal float64
	// GrowthPercent is month-over-month growth. When the previous month
	// had no sales the value is 100 if the current month has any, else 0;
	// a convention to avoid dividing by zero, not a general growth formula.
	GrowthPercent float64

	Daily []DailyPoint
}

// DailyPoint is one day's sales total in the recent-activity series.
// Day is midnight UTC of the bucket's calendar day.
type DailyPoint struct {
	Day   time.Time
	Total float64
}

// Summarize computes the analytics summary. all is the full invoice list,
// filtered the date-filtered subset used for everything except the
// month-over-month figures, and now anchors the calendar months.
func Summarize(all, filtered []domain.Invoice, now time.Time) Summary {
	s := Summary{
		ByCategory: make(map[domain.CustomerCategory]float64, len(domain.Categories)),
	}
	for _, cat := range domain.Categories {
		s.ByCategory[cat] = 0
	}

	for i := range filtered {
		inv := &filtered[i]
		s.TotalSales += inv.Total
		s.ByCategory[inv.CustomerCategory] += inv.Total

		switch inv.Status {
		case domain.StatusPending:
			s.Pending++
		case domain.StatusDelivered:
			s.Delivered++
		case domain.StatusCollected:
			s.Collected++
		}
	}

	s.CurrentMonthTotal, s.PreviousMonthTotal = MonthOverMonth(all, now)
	s.GrowthPercent = GrowthPercent(s.CurrentMonthTotal, s.PreviousMonthTotal)
	s.Daily = DailySeries(filtered, maxSeriesDays)
	return s
}

// MonthOverMonth sums invoice totals for the calendar month containing now
// and the immediately preceding calendar month, using each invoice's own
// timestamp. Always fed the unfiltered list, regardless of any active
// date filter.
func MonthOverMonth(invoices []domain.Invoice, now time.Time) (current, previous float64) {
	curYear, curMonth, _ := now.Date()
	prev := time.Date(curYear, curMonth, 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	prevYear, prevMonth, _ := prev.Date()

	for i := range invoices {
		y, m, _ := invoices[i].Date.Date()
		switch {
		case y == curYear && m == curMonth:
			current += invoices[i].Total
		case y == prevYear && m == prevMonth:
			previous += invoices[i].Total
		}
	}
	return current, previous
}

// GrowthPercent returns (current-previous)/previous*100 with the
// zero-previous convention described on Summary.GrowthPercent.
func GrowthPercent(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// DailySeries buckets invoice totals by calendar day and returns at most
// the maxDays most recent distinct days with activity, ordered
// chronologically ascending. Day identity is the formatted date, never the
// time.Time value: two Dates on the same wall-clock day must share a bucket
// even when their Location objects differ, as happens when freshly created
// invoices sit next to JSON-reloaded ones.
func DailySeries(invoices []domain.Invoice, maxDays int) []DailyPoint {
	totals := make(map[string]float64)
	for i := range invoices {
		totals[invoices[i].Date.Format("2006-01-02")] += invoices[i].Total
	}

	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	// Lexicographic order is chronological for YYYY-MM-DD.
	sort.Strings(days)

	if len(days) > maxDays {
		days = days[len(days)-maxDays:]
	}

	series := make([]DailyPoint, len(days))
	for i, day := range days {
		t, _ := time.Parse("2006-01-02", day)
		series[i] = DailyPoint{Day: t, Total: totals[day]}
	}
	return series
}
