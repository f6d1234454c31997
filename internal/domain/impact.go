package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount is returned for a donation amount that is not positive.
var ErrInvalidAmount = errors.New("donation amount must be positive")

// SuggestedAmounts are the preset whole-dollar donation buttons.
var SuggestedAmounts = []int{25, 50, 100, 250}

// ImpactPreview describes what a donation of amount dollars would fund at a
// station. Tiers are inclusive lower bounds: 500, 250, 100, 50.
func ImpactPreview(amount int, station Station) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	switch {
	case amount >= 500:
		return "Fund complete program restoration for " + station.Name, nil
	case amount >= 250:
		return "Support emergency equipment upgrade", nil
	case amount >= 100:
		return "Help maintain local news coverage for one month", nil
	case amount >= 50:
		return "Support one week of emergency broadcasting", nil
	default:
		return "Contribute to daily operations", nil
	}
}
