package symbols

import "testing"

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "lowercase egyptian", raw: "comi", want: "COMI.CA"},
		{name: "numeric saudi", raw: "2222", want: "2222.SR"},
		// Known misclassification: a bare US ticker reaching the
		// repair stage gets the Egyptian default.
		{name: "bare us ticker", raw: "AAPL", want: "AAPL.CA"},
		{name: "already suffixed", raw: "COMI.CA", want: "COMI.CA"},
		{name: "crypto dash passes through", raw: "btc-usd", want: "BTC-USD"},
		{name: "whitespace trimmed", raw: "  fwry \n", want: "FWRY.CA"},
		{name: "mixed case suffix", raw: "2010.sr", want: "2010.SR"},
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTicker(tt.raw)
			if got != tt.want {
				t.Errorf("NormalizeTicker(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeTickerIsIdempotent(t *testing.T) {
	inputs := []string{"comi", "2222", "AAPL", "BTC-USD", "GC=F", "fwry.ca"}

	for _, raw := range inputs {
		once := NormalizeTicker(raw)
		twice := NormalizeTicker(once)
		if once != twice {
			t.Errorf("NormalizeTicker not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}
