// Package pricing holds the display-currency configuration that the
// storefront UI reaches for. The supported languages, currencies and
// exchange rates are plain data; callers pass an explicit Locale instead
// of consulting process-wide state.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency catalog prices are stored in.
const BaseCurrency = "RUB"

type Locale struct {
	Language string // "ru" | "en"
	Currency string // "RUB" | "KZT" | "USD"
}

var DefaultLocale = Locale{Language: "ru", Currency: "RUB"}

// exchangeRates maps a display currency to its multiplier from RUB.
var exchangeRates = map[string]decimal.Decimal{
	"RUB": decimal.NewFromInt(1),
	"KZT": decimal.RequireFromString("5.5"),
	"USD": decimal.RequireFromString("0.011"),
}

var currencySymbols = map[string]string{
	"RUB": "₽",
	"KZT": "₸",
	"USD": "$",
}

var supportedLanguages = map[string]bool{"ru": true, "en": true}

func SupportedCurrencies() []string { return []string{"RUB", "KZT", "USD"} }

func (l Locale) Valid() bool {
	_, ok := exchangeRates[l.Currency]
	return ok && supportedLanguages[l.Language]
}

// Convert translates a base-currency amount into the locale's display
// currency, rounded to two decimal places.
func Convert(price decimal.Decimal, l Locale) (decimal.Decimal, error) {
	rate, ok := exchangeRates[l.Currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("unsupported currency %q", l.Currency)
	}
	return price.Mul(rate).Round(2), nil
}

// Format renders a base-currency amount for display in the given locale.
func Format(price decimal.Decimal, l Locale) (string, error) {
	converted, err := Convert(price, l)
	if err != nil {
		return "", err
	}
	return converted.StringFixed(2) + " " + currencySymbols[l.Currency], nil
}

// MinorUnits converts a decimal base-currency amount to integer minor units
// (kopecks/cents) for the payment provider. Rounds half away from zero so
// fractional kopecks never truncate silently.
func MinorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
