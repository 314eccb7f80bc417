// Package symbols implements the symbol resolution primitives: the curated
// alias table, fuzzy lookup over its keys, and the exchange-suffix repair
// heuristic for tickers produced by the language model.
package symbols

import "github.com/mohamedagadya/Stocks/internal/models"

// Table is the curated alias to ticker mapping. It is built once at process
// start and never mutated afterwards, so concurrent readers need no
// synchronization. Each alias maps to exactly one ticker; aliases are kept
// exactly as authored (mixed scripts, mixed case).
type Table struct {
	entries []models.AliasEntry
	byAlias map[string]string
}

// NewTable builds a table from the given entries, preserving order. Later
// duplicates of an alias are dropped so that each alias stays a unique key.
func NewTable(entries []models.AliasEntry) *Table {
	t := &Table{
		entries: make([]models.AliasEntry, 0, len(entries)),
		byAlias: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if _, exists := t.byAlias[e.Alias]; exists {
			continue
		}
		t.byAlias[e.Alias] = e.Ticker
		t.entries = append(t.entries, e)
	}
	return t
}

// DefaultTable returns the built-in instrument directory: Egyptian and Saudi
// listings plus the common US mega-caps, gold and bitcoin. Aliases carry
// both Arabic and Latin names so fuzzy matching works for either script.
func DefaultTable() *Table {
	return NewTable([]models.AliasEntry{
		// Egypt
		{Alias: "البنك التجاري الدولي cib", Ticker: "COMI.CA"},
		{Alias: "فوري fawry", Ticker: "FWRY.CA"},
		{Alias: "حديد عز ezz steel", Ticker: "ESRS.CA"},
		{Alias: "مجموعة طلعت مصطفى tmg", Ticker: "TMGH.CA"},
		{Alias: "السويدي إليكتريك elsewedy", Ticker: "SWDY.CA"},
		{Alias: "إي فاينانس e-finance", Ticker: "EFIH.CA"},
		{Alias: "بلتون المالية beltone", Ticker: "BTLL.CA"},
		{Alias: "بالم هيلز palm hills", Ticker: "PHDC.CA"},
		{Alias: "هيرميس efg hermes", Ticker: "HRHO.CA"},
		{Alias: "موبكو mopco", Ticker: "MFPC.CA"},
		{Alias: "أبو قير للأسمدة", Ticker: "ABUK.CA"},
		{Alias: "سيدي كرير للبتروكيماويات sidpec", Ticker: "SKPC.CA"},

		// Saudi Arabia
		{Alias: "أرامكو aramco", Ticker: "2222.SR"},
		{Alias: "مصرف الراجحي al rajhi", Ticker: "1120.SR"},
		{Alias: "سابك sabic", Ticker: "2010.SR"},
		{Alias: "الأهلي السعودي snb", Ticker: "1180.SR"},
		{Alias: "الكهرباء السعودية", Ticker: "5110.SR"},

		// United States
		{Alias: "apple أبل", Ticker: "AAPL"},
		{Alias: "tesla تسلا", Ticker: "TSLA"},
		{Alias: "microsoft مايكروسوفت", Ticker: "MSFT"},
		{Alias: "google جوجل", Ticker: "GOOGL"},
		{Alias: "amazon أمازون", Ticker: "AMZN"},
		{Alias: "meta فيسبوك", Ticker: "META"},
		{Alias: "nvidia إنفيديا", Ticker: "NVDA"},

		// Commodities and crypto
		{Alias: "gold ذهب", Ticker: "GC=F"},
		{Alias: "bitcoin بيتكوين", Ticker: "BTC-USD"},
	})
}

// All returns every entry in insertion order. Callers must not mutate the
// returned slice.
func (t *Table) All() []models.AliasEntry {
	return t.entries
}

// Ticker returns the canonical ticker for an exact alias.
func (t *Table) Ticker(alias string) (string, bool) {
	ticker, ok := t.byAlias[alias]
	return ticker, ok
}

// Len returns the number of aliases in the table.
func (t *Table) Len() int {
	return len(t.entries)
}
