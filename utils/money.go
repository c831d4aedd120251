package utils

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var gbpPrinter = message.NewPrinter(language.BritishEnglish)

// FormatGBP renders whole pounds the way the checkout shows them, "£1,234" or "-£40"
func FormatGBP(amount int64) string {
	digits := gbpPrinter.Sprintf("%d", amount)
	if rest, negative := strings.CutPrefix(digits, "-"); negative {
		return "-£" + rest
	}
	return "£" + digits
}
