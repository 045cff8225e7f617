package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"billable-timer/internal/domain"
)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct{}

// NewTimeService creates a new TimeService instance
func NewTimeService() TimeService {
	return &timeServiceImpl{}
}

func (t *timeServiceImpl) FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func (t *timeServiceImpl) FormatDuration(duration time.Duration) string {
	if duration < 0 {
		return "0h 0m"
	}

	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (t *timeServiceImpl) FormatMinutes(minutes decimal.Decimal) string {
	return minutes.StringFixed(domain.CurrencyPlaces)
}

func (t *timeServiceImpl) FormatMoney(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(domain.CurrencyPlaces)
	}
	return amount.StringFixed(domain.CurrencyPlaces) + " " + currency
}
