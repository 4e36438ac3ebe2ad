package jobs

import (
	"context"

	"genset-rental-backend/internal/logger"
)

// SendDueSoonReminders emails the admin a digest of active rentals ending
// within the due-soon window. Nothing is sent when no rental qualifies.
func (jr *JobRunner) SendDueSoonReminders() error {
	return jr.runWithRecovery(JobSendDueSoonReminders, func(ctx context.Context) error {
		orders, err := jr.services.Reports.DueSoon(ctx)
		if err != nil {
			return err
		}

		logger.FromContext(ctx).Info("Found rentals due soon", "count", len(orders))
		if len(orders) == 0 {
			return nil
		}
		return jr.services.Email.SendDueSoonDigest(ctx, orders)
	})
}

// ReportOverdueReturns logs every active rental past its end date and mails
// the list to the admin. PO and item state is left untouched.
func (jr *JobRunner) ReportOverdueReturns() error {
	return jr.runWithRecovery(JobReportOverdueReturns, func(ctx context.Context) error {
		orders, err := jr.services.Reports.Overdue(ctx)
		if err != nil {
			return err
		}

		log := logger.FromContext(ctx)
		log.Info("Found overdue rentals", "count", len(orders))
		if len(orders) == 0 {
			return nil
		}

		for _, po := range orders {
			log.Warn("Rental overdue",
				"po_id", po.ID,
				"po_number", po.PONumber,
				"customer", po.CustomerName,
				"rental_end", po.RentalEnd.Format("2006-01-02"))
		}
		return jr.services.Email.SendOverdueReport(ctx, orders)
	})
}
