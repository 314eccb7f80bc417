package symbols

import "strings"

// NormalizeTicker repairs a raw ticker guess coming out of the language
// model:
//
//  1. trim whitespace, uppercase
//  2. already carries an exchange suffix (".") or a dash ("-", crypto):
//     pass through unchanged
//  3. all digits: Saudi listing, append ".SR"
//  4. otherwise: default to an Egyptian listing, append ".CA"
//
// Step 4 deliberately misclassifies any bare US ticker that reaches this
// stage ("AAPL" becomes "AAPL.CA"); US symbols are expected to be caught by
// the table or correctly suffixed by the model before this runs. The
// function is idempotent: a repaired ticker contains "." and passes through
// on a second call.
func NormalizeTicker(raw string) string {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker == "" {
		return ""
	}

	if strings.ContainsAny(ticker, ".-") {
		return ticker
	}

	if isAllDigits(ticker) {
		return ticker + ".SR"
	}

	return ticker + ".CA"
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
