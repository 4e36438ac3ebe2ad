package domain

import "time"

type DashboardStats struct {
	Processed int `json:"processed"`
	DueSoon   int `json:"dueSoon"`
	Completed int `json:"completed"`
	FinanceTotals
}

type ReportSummary struct {
	FinanceTotals
	TotalPO  int `json:"totalPO"`
	ActivePO int `json:"activePO"`
}

// DateRange is an optional inclusive date filter.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (r DateRange) IsSet() bool {
	return r.Start != nil && r.End != nil
}
