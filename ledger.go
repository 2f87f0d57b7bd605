package dividends

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/etnz/dividends/date"
	log "github.com/sirupsen/logrus"
)

// Snapshot is the read access analytics need from a ledger.
type Snapshot interface {
	// Records yields every dividend record, order is not significant.
	Records(filters ...func(DividendRecord) bool) iter.Seq[DividendRecord]
	// Holdings returns the holdings indexed by symbol.
	Holdings() map[string]Holding
	// Revision changes every time the content changes.
	Revision() uint64
}

// Ledger holds dividend records and holdings.
//
// In a Ledger records are always in chronological order of ex-date, then
// symbol. The ledger owns no derived state.
type Ledger struct {
	records  []DividendRecord
	holdings map[string]Holding // index holdings by symbol
	revision uint64
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		records:  make([]DividendRecord, 0),
		holdings: make(map[string]Holding),
	}
}

var _ Snapshot = (*Ledger)(nil)

// Revision returns a counter incremented on every mutation.
func (l *Ledger) Revision() uint64 { return l.revision }

// Len returns the number of dividend records.
func (l *Ledger) Len() int { return len(l.records) }

func (l *Ledger) touch() { l.revision++ }

// Add appends a dividend record to the ledger and maintains the chronological order.
//
// A record with the same symbol and ex-date as an existing one is rejected
// with ErrDuplicateRecord unless force is true, in which case both are kept.
func (l *Ledger) Add(rec DividendRecord, force bool) error {
	if _, exists := l.find(rec.Key()); exists {
		if !force {
			return fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.Key())
		}
		log.Warnf("%v: forcing duplicate dividend for %s", rec.ExDate(), rec.Symbol())
	}
	// insert after any record that sorts equal, forced duplicates keep their order.
	i := sort.Search(len(l.records), func(i int) bool { return compareRecords(l.records[i], rec) > 0 })
	l.records = slices.Insert(l.records, i, rec)
	l.touch()
	log.Debugf("%v: append dividend %v", rec.ExDate(), rec)
	return nil
}

// Merge adds a batch of records and sorts the ledger once.
//
// A record whose key is already in the ledger, or earlier in the batch,
// replaces the existing record if replace is true and is skipped otherwise.
func (l *Ledger) Merge(recs []DividendRecord, replace bool) ImportResult {
	var res ImportResult
	index := make(map[Key]int, len(l.records)+len(recs))
	for i, rec := range l.records {
		if _, ok := index[rec.Key()]; !ok {
			index[rec.Key()] = i
		}
	}

	changed := false
	for _, rec := range recs {
		i, exists := index[rec.Key()]
		switch {
		case !exists:
			index[rec.Key()] = len(l.records)
			l.records = append(l.records, rec)
			changed = true
			res.Added++
		case replace:
			if old := l.records[i]; !old.Equal(rec) {
				log.Infof("%v: update %v dividend %v with %v", rec.ExDate(), rec.Symbol(), old, rec)
				l.records[i] = rec
				changed = true
			}
			res.Updated++
		default:
			log.Debugf("skipping duplicate dividend %v", rec.Key())
			res.Skipped++
		}
	}
	if changed {
		l.stableSort()
		l.touch()
	}
	return res
}

// Replace substitutes the record sharing rec's key.
func (l *Ledger) Replace(rec DividendRecord) error {
	i, ok := l.find(rec.Key())
	if !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, rec.Key())
	}
	old := l.records[i]
	if old.Equal(rec) {
		// if identical do nothing
		return nil
	}
	log.Infof("%v: update %v dividend %v with %v", rec.ExDate(), rec.Symbol(), old, rec)
	l.records[i] = rec
	l.stableSort()
	l.touch()
	return nil
}

// Remove deletes every record of symbol on exDate. It returns the number of
// deleted records.
func (l *Ledger) Remove(symbol string, exDate date.Date) (int, error) {
	key := Key{Symbol: NormalizeSymbol(symbol), ExDate: exDate}
	n := len(l.records)
	l.records = slices.DeleteFunc(l.records, func(r DividendRecord) bool { return r.Key() == key })
	removed := n - len(l.records)
	if removed == 0 {
		return 0, fmt.Errorf("%w: %s", ErrRecordNotFound, key)
	}
	l.touch()
	log.Infof("%v: removed %d dividend(s) for %v", exDate, removed, key.Symbol)
	return removed, nil
}

// UpsertHolding creates or replaces the holding for its symbol.
// It returns true if an existing holding was replaced.
func (l *Ledger) UpsertHolding(h Holding) bool {
	_, existed := l.holdings[h.Symbol]
	l.holdings[h.Symbol] = h
	l.touch()
	if existed {
		log.Debugf("update holding %v to %v shares", h.Symbol, h.Shares)
	} else {
		log.Debugf("create holding %v with %v shares", h.Symbol, h.Shares)
	}
	return existed
}

// RemoveHolding deletes the holding for symbol. Dividend records are kept.
func (l *Ledger) RemoveHolding(symbol string) error {
	symbol = NormalizeSymbol(symbol)
	if _, ok := l.holdings[symbol]; !ok {
		return fmt.Errorf("%w: %s", ErrHoldingNotFound, symbol)
	}
	delete(l.holdings, symbol)
	l.touch()
	log.Infof("removed holding %v", symbol)
	return nil
}

// Holding returns the holding for symbol.
func (l *Ledger) Holding(symbol string) (Holding, bool) {
	h, ok := l.holdings[NormalizeSymbol(symbol)]
	return h, ok
}

// Holdings returns a copy of the holdings indexed by symbol.
func (l *Ledger) Holdings() map[string]Holding {
	return maps.Clone(l.holdings)
}

// AllHoldings iterates over holdings in symbol order.
func (l *Ledger) AllHoldings() iter.Seq[Holding] {
	return func(yield func(Holding) bool) {
		symbols := slices.Sorted(maps.Keys(l.holdings))
		for _, symbol := range symbols {
			if !yield(l.holdings[symbol]) {
				return
			}
		}
	}
}

// Records returns an iterator that yields each record accepted by all filters,
// in chronological order.
func (l *Ledger) Records(filters ...func(DividendRecord) bool) iter.Seq[DividendRecord] {
	return func(yield func(DividendRecord) bool) {
		for _, rec := range l.records {
			if !accept(rec, filters) {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// RecordsFor returns the records of a symbol.
func (l *Ledger) RecordsFor(symbol string) []DividendRecord {
	return slices.Collect(l.Records(BySymbol(symbol)))
}

// RecordsIn returns the records whose ex-date falls in year.
func (l *Ledger) RecordsIn(year int) []DividendRecord {
	return slices.Collect(l.Records(ByYear(year)))
}

// Years returns the sorted distinct ex-date years.
func (l *Ledger) Years() []int {
	return recordYears(l.Records())
}

// Symbols returns the sorted distinct symbols of dividend records.
func (l *Ledger) Symbols() []string {
	seen := make(map[string]struct{})
	for _, rec := range l.records {
		seen[rec.Symbol()] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// OldestExDate returns the earliest ex-date, or the zero date for an empty ledger.
func (l *Ledger) OldestExDate() date.Date {
	if len(l.records) == 0 {
		return date.Date{}
	}
	return l.records[0].ExDate()
}

// NewestExDate returns the latest ex-date, or the zero date for an empty ledger.
func (l *Ledger) NewestExDate() date.Date {
	if len(l.records) == 0 {
		return date.Date{}
	}
	return l.records[len(l.records)-1].ExDate()
}

func (l *Ledger) find(key Key) (int, bool) {
	for i, rec := range l.records {
		if rec.Key() == key {
			return i, true
		}
	}
	return -1, false
}

// stableSort sorts the ledger by ex-date then symbol. The sort is stable, meaning
// forced duplicates maintain their original relative order.
func (l *Ledger) stableSort() {
	slices.SortStableFunc(l.records, compareRecords)
}

// compareRecords orders records by ex-date then symbol.
func compareRecords(a, b DividendRecord) int {
	if c := a.ExDate().Compare(b.ExDate()); c != 0 {
		return c
	}
	return strings.Compare(a.Symbol(), b.Symbol())
}

func accept(rec DividendRecord, filters []func(DividendRecord) bool) bool {
	for _, filter := range filters {
		if !filter(rec) {
			return false
		}
	}
	return true
}

// BySymbol returns a predicate that filters records by symbol, case insensitively.
func BySymbol(symbol string) func(DividendRecord) bool {
	symbol = NormalizeSymbol(symbol)
	return func(rec DividendRecord) bool { return rec.Symbol() == symbol }
}

// ByYear returns a predicate that filters records by ex-date year.
func ByYear(year int) func(DividendRecord) bool {
	return func(rec DividendRecord) bool { return rec.Year() == year }
}

// ByRange returns a predicate that filters records whose ex-date is in r.
func ByRange(r date.Range) func(DividendRecord) bool {
	return func(rec DividendRecord) bool { return r.Contains(rec.ExDate()) }
}

// ByTax returns a predicate that filters records by tax classification.
func ByTax(c TaxClassification) func(DividendRecord) bool {
	return func(rec DividendRecord) bool { return rec.Tax() == c }
}

// recordYears returns the sorted distinct ex-date years of records.
func recordYears(records iter.Seq[DividendRecord]) []int {
	seen := make(map[int]struct{})
	for rec := range records {
		seen[rec.Year()] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// String lists the records, one per line.
func (l *Ledger) String() string {
	var b strings.Builder
	for _, rec := range l.records {
		b.WriteString(rec.String())
		b.WriteByte('\n')
	}
	return b.String()
}
