package summary

import (
	"fmt"

	"finops/lease-recon/internal/dateutils"
	"finops/lease-recon/internal/models"
)

// ValidateTiers checks that the number of filled, non-zero rent tiers
// matches the lease term implied by the delivery and lease-end dates. A
// mismatch yields an advisory note for the summary row; the lease-end date
// stays authoritative for all proration either way. An empty string means
// no conflict (or not enough dates to tell).
func ValidateTiers(c models.Contract) string {
	if !c.HasDelivery() || c.LeaseEndDate.IsZero() {
		return ""
	}

	// Term in whole years, any partial month or day rounding up. The +1
	// day makes a term ending the day before an anniversary count as
	// exactly that many years.
	years, remainder := dateutils.CalendarYears(c.DeliveryDate, c.LeaseEndDate.AddDate(0, 0, 1))
	actualYears := years
	if remainder {
		actualYears++
	}

	filledYears := c.PresentRentYears()
	if filledYears == actualYears {
		return ""
	}

	return fmt.Sprintf(
		"data conflict: %s (%s): lease end date implies a term of about %d year(s), but %d year(s) of rent data are filled in; calculation uses the lease end date (%s)",
		c.Customer, c.MerchantID, actualYears, filledYears,
		dateutils.ToISODate(c.LeaseEndDate))
}
