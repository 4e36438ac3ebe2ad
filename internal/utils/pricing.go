package utils

import (
	"time"

	"genset-rental-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// LineCost is the billable part of a purchase order line.
type LineCost struct {
	Quantity  int
	DailyRate decimal.Decimal
}

// ParseDate parses a yyyy-mm-dd string into a UTC midnight time.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError("%s must be a date in yyyy-mm-dd format", field)
	}
	return t, nil
}

const secondsPerDay = 24 * 60 * 60

// calendarDate drops the clock and zone so that day arithmetic is exact.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RentalDays returns the billable days between start and end, both included.
// A same-day rental is one day.
func RentalDays(start, end time.Time) (int, error) {
	s, e := calendarDate(start), calendarDate(end)
	if e.Before(s) {
		return 0, domain.NewValidationError("rental_end must not be before rental_start")
	}
	return int((e.Unix()-s.Unix())/secondsPerDay) + 1, nil
}

// LineSubtotal is quantity × daily rate × days for one line.
func LineSubtotal(quantity int, dailyRate decimal.Decimal, days int) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(int64(quantity))).Mul(decimal.NewFromInt(int64(days)))
}

// ComputeTotal sums the line subtotals over the inclusive rental period.
func ComputeTotal(start, end time.Time, lines []LineCost) (decimal.Decimal, error) {
	days, err := RentalDays(start, end)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineSubtotal(line.Quantity, line.DailyRate, days))
	}
	return total, nil
}
