package services

import (
	"time"

	"github.com/joshua-takyi/staybay/internal/models"
	"github.com/shopspring/decimal"
)

// NightsBetween counts whole nights in the half-open range [checkIn,
// checkOut). Both bounds sit at midnight UTC, so the division is exact.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}

// PriceStay computes a stay total as price_per_night times nights. The
// arithmetic stays in decimals end to end; money never transits a float.
func PriceStay(pricePerNight decimal.Decimal, checkIn, checkOut time.Time) (int, decimal.Decimal, error) {
	nights := NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return 0, decimal.Decimal{}, models.NewValidationError(models.ErrInvalidDateRange, "check-out date must be after check-in date")
	}

	total := pricePerNight.Mul(decimal.NewFromInt(int64(nights)))
	return nights, total, nil
}
