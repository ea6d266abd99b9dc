package sheets

import (
	"context"

	"expenses/internal/core"
)

// Ports for outbound report adapters.
type (
	// ReportWriter publishes the category summary somewhere outside the
	// local file system.
	ReportWriter interface {
		// PublishReport replaces the previous report and returns a
		// reference to where it was written.
		PublishReport(ctx context.Context, totals core.CategoryTotals) (ref string, err error)
	}
)
