package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/ukcalc/internal/domain"
)

// projectionMonths is the number of months in the childcare projection
const projectionMonths = 3

// WeekdayCounts counts each weekday, Monday to Friday, in a calendar month
func WeekdayCounts(year int, month time.Month) domain.WeekdayCounts {
	counts := domain.WeekdayCounts{
		time.Monday: 0, time.Tuesday: 0, time.Wednesday: 0, time.Thursday: 0, time.Friday: 0,
	}
	day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day.Month() == month {
		if _, weekday := counts[day.Weekday()]; weekday {
			counts[day.Weekday()]++
		}
		day = day.AddDate(0, 0, 1)
	}
	return counts
}

// schedules resolves each child's bookings, substituting the first child's
// schedule for later children that share it
func schedules(children []domain.ChildSchedule) []domain.WeekSchedule {
	out := make([]domain.WeekSchedule, len(children))
	for i, child := range children {
		if i > 0 && child.SameSchedule {
			out[i] = out[0]
			continue
		}
		out[i] = child.Schedule
	}
	return out
}

func monthCost(counts domain.WeekdayCounts, weeks []domain.WeekSchedule, fullDay, halfDay decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, week := range weeks {
		for weekday, n := range counts {
			switch week.Day(weekday) {
			case domain.CareFull:
				total = total.Add(fullDay.Mul(decimal.NewFromInt(int64(n))))
			case domain.CareHalf:
				total = total.Add(halfDay.Mul(decimal.NewFromInt(int64(n))))
			}
		}
	}
	return total
}

// CalculateChildcareCost prices the booked sessions for the selected month and the
// two months after it
func CalculateChildcareCost(in domain.ChildcareInputs) domain.ChildcareResult {
	weeks := schedules(in.Children)
	first := time.Date(in.Year, in.Month, 1, 0, 0, 0, 0, time.UTC)

	result := domain.ChildcareResult{Projection: make([]domain.MonthlyCost, 0, projectionMonths)}
	for i := 0; i < projectionMonths; i++ {
		month := first.AddDate(0, i, 0)
		counts := WeekdayCounts(month.Year(), month.Month())
		result.Projection = append(result.Projection, domain.MonthlyCost{
			Label:  fmt.Sprintf("%s %d", month.Format("Jan"), month.Year()),
			Year:   month.Year(),
			Month:  month.Month(),
			Counts: counts,
			Cost:   monthCost(counts, weeks, in.FullDayCost, in.HalfDayCost),
		})
	}
	result.MonthlyCost = result.Projection[0].Cost
	return result
}
