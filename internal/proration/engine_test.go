package proration

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finops/lease-recon/internal/dateutils"
	"finops/lease-recon/internal/models"
)

func tier(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func absentTier() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

func contract(delivery, leaseEnd time.Time, freeDays int, tiers ...decimal.NullDecimal) models.Contract {
	return models.Contract{
		Customer:     "Aurora Dining Group Ltd",
		MerchantID:   "M-1001",
		DeliveryDate: delivery,
		LeaseEndDate: leaseEnd,
		FreeDays:     freeDays,
		RentYears:    tiers,
	}
}

func TestMonthlyRentFullMonth(t *testing.T) {
	// A month fully inside one lease year yields the tier figure in full.
	c := contract(
		dateutils.Date(2025, time.January, 1),
		dateutils.Date(2025, time.December, 31),
		0, tier("12000"))

	amount, detail := MonthlyRentDetail(c, 0, nil)
	assert.Equal(t, "12000.00", amount.Round(2).StringFixed(2))
	assert.Equal(t, 1, detail.YearIndex)
	assert.Equal(t, 31, detail.PayableDays)
	assert.Equal(t, 31, detail.MonthDays)
	assert.False(t, detail.Split)
}

func TestMonthlyRentFreeDays(t *testing.T) {
	// 30 free days from delivery leave one payable day in January.
	c := contract(
		dateutils.Date(2025, time.January, 1),
		dateutils.Date(2025, time.December, 31),
		30, tier("12000"))

	amount, detail := MonthlyRentDetail(c, 0, nil)
	assert.Equal(t, 30, detail.FreeDays)
	assert.Equal(t, 31, detail.EffectiveDays)
	assert.Equal(t, 1, detail.PayableDays)
	assert.Equal(t, "387.10", amount.Round(2).StringFixed(2))

	// February is past the free-rent window and pays in full.
	feb := MonthlyRent(c, 1, nil)
	assert.Equal(t, "12000.00", feb.Round(2).StringFixed(2))
}

func TestMonthlyRentFreeDaysCoverWholeMonth(t *testing.T) {
	c := contract(
		dateutils.Date(2025, time.January, 1),
		dateutils.Date(2025, time.December, 31),
		31, tier("12000"))

	amount, detail := MonthlyRentDetail(c, 0, nil)
	assert.True(t, amount.IsZero())
	assert.Equal(t, 0, detail.PayableDays)
}

func TestMonthlyRentMidMonthDelivery(t *testing.T) {
	// Delivery on the 15th: January pays 17 of 31 days, and the month start
	// before the anniversary day still belongs to lease year 1.
	c := contract(
		dateutils.Date(2025, time.January, 15),
		dateutils.Date(2026, time.January, 14),
		0, tier("12000"))

	amount, detail := MonthlyRentDetail(c, 0, nil)
	assert.Equal(t, 17, detail.PayableDays)
	assert.Equal(t, 1, detail.YearIndex)
	assert.Equal(t, "6580.65", amount.Round(2).StringFixed(2))
}

func TestMonthlyRentOutsideLeaseTerm(t *testing.T) {
	c := contract(
		dateutils.Date(2025, time.January, 1),
		dateutils.Date(2025, time.December, 31),
		0, tier("12000"))

	// January 2026 is past the lease end.
	amount, detail := MonthlyRentDetail(c, 12, nil)
	assert.True(t, amount.IsZero())
	assert.Equal(t, 0, detail.EffectiveDays)
}

func TestMonthlyRentNoDelivery(t *testing.T) {
	c := contract(time.Time{}, dateutils.Date(2025, time.December, 31), 0, tier("12000"))
	amount, _ := MonthlyRentDetail(c, 0, nil)
	assert.True(t, amount.IsZero())
}

func TestMonthlyRentAbsentTier(t *testing.T) {
	// Year 2 has no figure filled in, so its months prorate to zero.
	c := contract(
		dateutils.Date(2025, time.January, 1),
		dateutils.Date(2026, time.December, 31),
		0, tier("12000"), absentTier())

	amount, detail := MonthlyRentDetail(c, 12, nil)
	assert.True(t, amount.IsZero())
	assert.Equal(t, 2, detail.YearIndex)
	assert.False(t, detail.AnnualRent.Valid)
}

func TestMonthlyRentSplitMonth(t *testing.T) {
	// Delivery 2025-01-15 puts the first lease-year boundary at 2026-01-14;
	// January 2026 splits 14/17 between the two tiers.
	c := contract(
		dateutils.Date(2025, time.January, 15),
		dateutils.Date(2027, time.January, 14),
		0, tier("12000"), tier("24000"))

	amount, detail := MonthlyRentDetail(c, 12, nil)
	require.True(t, detail.Split)
	assert.Equal(t, 1, detail.SplitYear)
	assert.Equal(t, 14, detail.N1Days)
	assert.Equal(t, 17, detail.N2Days)
	assert.Equal(t, detail.MonthDays, detail.N1Days+detail.N2Days)

	// 12000/31*14 + 24000/31*17
	assert.Equal(t, "18580.65", amount.Round(2).StringFixed(2))
}

func TestMonthlyRentSplitPartsCoverTheMonth(t *testing.T) {
	// Whatever the delivery day, the two parts of a split month add up to
	// the days of that month.
	for day := 2; day <= 28; day++ {
		c := contract(
			dateutils.Date(2025, time.March, day),
			dateutils.Date(2028, time.March, day-1),
			0, tier("10000"), tier("11000"), tier("12000"))

		for offset := 0; offset < 36; offset++ {
			_, detail := MonthlyRentDetail(c, offset, nil)
			if detail.Split {
				assert.Equal(t, detail.MonthDays, detail.N1Days+detail.N2Days,
					"delivery day %d offset %d", day, offset)
			}
		}
	}
}

func TestMonthlyRentSplitAtMonthEnd(t *testing.T) {
	// Boundary falling on the last day of the month: the second part is
	// empty and the whole month pays the old tier.
	c := contract(
		dateutils.Date(2025, time.January, 1),
		dateutils.Date(2026, time.December, 31),
		0, tier("12000"), tier("24000"))

	// Boundary is 2025-12-31, inside December 2025.
	amount, detail := MonthlyRentDetail(c, 11, nil)
	require.True(t, detail.Split)
	assert.Equal(t, 31, detail.N1Days)
	assert.Equal(t, 0, detail.N2Days)
	assert.Equal(t, "12000.00", amount.Round(2).StringFixed(2))
}

func TestMonthlyRentSplitWithAbsentSecondTier(t *testing.T) {
	// An absent tier counts as zero in a split month: only the first part
	// contributes.
	c := contract(
		dateutils.Date(2025, time.January, 15),
		dateutils.Date(2027, time.January, 14),
		0, tier("12000"), absentTier())

	amount, detail := MonthlyRentDetail(c, 12, nil)
	require.True(t, detail.Split)
	assert.True(t, detail.AnnualRent2.IsZero())
	// 12000/31*14
	assert.Equal(t, "5419.35", amount.Round(2).StringFixed(2))
}

func TestMonthlyRentTraceNarrative(t *testing.T) {
	c := contract(
		dateutils.Date(2025, time.January, 1),
		dateutils.Date(2025, time.December, 31),
		0, tier("12000"))

	tr := &Trace{}
	MonthlyRent(c, 0, tr)
	require.NotZero(t, tr.Len())
	assert.Contains(t, tr.String(), "month 2025-01")
	assert.Contains(t, tr.String(), "12000.00 / 31 x 31")
}

func TestTraceNilReceiver(t *testing.T) {
	var tr *Trace
	tr.Printf("never recorded %d", 1)
	assert.Nil(t, tr.Lines())
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, "", tr.String())
}

func TestTraceCollectsLines(t *testing.T) {
	tr := &Trace{}
	tr.Printf("first %d", 1)
	tr.Printf("second")
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, []string{"first 1", "second"}, tr.Lines())
	assert.Equal(t, "first 1\nsecond", tr.String())
}
