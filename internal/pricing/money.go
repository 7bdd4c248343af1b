package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/wellway-health/wellway-backend/pkg/errors"
)

// Symbol is the currency marker used on display strings.
const Symbol = "₹"

// FormatCents renders integer cents as the 2-decimal wire string the
// dashboard consumes, e.g. 5000 -> "50.00".
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}

// Display prefixes the formatted amount with the currency symbol.
func Display(cents int64) string {
	return Symbol + FormatCents(cents)
}

// ParsePrice converts a price string into integer cents. A leading currency
// symbol and surrounding whitespace are tolerated so re-parsing an already
// formatted value round-trips.
func ParsePrice(value string) (int64, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), Symbol))
	if trimmed == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "price value is required")
	}
	dec, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price value")
	}
	return dec.Shift(2).Round(0).IntPart(), nil
}

// Reformat normalizes an arbitrary price string to the canonical 2-decimal
// form. Applying it to its own output yields the same string.
func Reformat(value string) (string, error) {
	cents, err := ParsePrice(value)
	if err != nil {
		return "", err
	}
	return FormatCents(cents), nil
}
