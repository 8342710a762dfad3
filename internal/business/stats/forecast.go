package stats

import (
	"time"

	"github.com/academyhub/stats/apps/api/pkg/model"
)

// MonthsPerYear scales the average monthly revenue to the annual projection.
const MonthsPerYear = 12

type monthKey struct {
	year  int
	month time.Month
}

func monthOf(t time.Time, loc *time.Location) monthKey {
	t = t.In(loc)
	return monthKey{year: t.Year(), month: t.Month()}
}

// ComputeForecast projects near-term and annual revenue from invoice history.
//
// Month windows are calendar months of now, in now's location, matched on DueDate.
// The collection rate is global: paid invoices over all invoices ever issued.
// Next month's expected revenue is the amount due scaled by that rate, and the
// third month and annual figures come from the mean of paid revenue per
// (year, month) bucket. Invoices without a due date count toward the collection
// rate only.
func ComputeForecast(invoices []model.Invoice, now time.Time) model.FinancialForecast {
	loc := now.Location()
	current := monthOf(now, loc)
	firstOfMonth := time.Date(now.In(loc).Year(), now.In(loc).Month(), 1, 0, 0, 0, 0, loc)
	next := monthOf(firstOfMonth.AddDate(0, 1, 0), loc)

	var f model.FinancialForecast
	var paidCount int
	paidByMonth := make(map[monthKey]float64)
	var buckets []monthKey

	for _, inv := range invoices {
		amt := amount(inv.Amount)
		if inv.Paid() {
			paidCount++
		}
		if inv.DueDate.IsZero() {
			continue
		}

		due := monthOf(inv.DueDate, loc)
		switch due {
		case current:
			if inv.Paid() {
				f.CurrentMonth.Paid += amt
			} else {
				f.CurrentMonth.Outstanding += amt
			}
		case next:
			f.NextMonth.Due += amt
		}
		if inv.Paid() {
			if _, ok := paidByMonth[due]; !ok {
				buckets = append(buckets, due)
			}
			paidByMonth[due] += amt
		}
	}

	// Sums of finite amounts can still overflow to +Inf.
	f.CurrentMonth.Paid = finite(f.CurrentMonth.Paid)
	f.CurrentMonth.Outstanding = finite(f.CurrentMonth.Outstanding)
	f.CurrentMonth.Total = finite(f.CurrentMonth.Paid + f.CurrentMonth.Outstanding)
	f.NextMonth.Due = finite(f.NextMonth.Due)
	f.CollectionRate = ratio(paidCount, len(invoices))
	f.CollectionRatePercent = f.CollectionRate * 100
	f.NextMonth.Expected = finite(f.NextMonth.Due * f.CollectionRate)

	// Summed in discovery order so repeated calls are bit-identical.
	var revenue float64
	for _, k := range buckets {
		revenue += paidByMonth[k]
	}
	f.AverageMonthlyRevenue = mean(revenue, len(buckets))
	f.ThirdMonth.Expected = f.AverageMonthlyRevenue
	f.AnnualProjected = finite(f.AverageMonthlyRevenue * MonthsPerYear)

	return f
}
