package dividends

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

// Dimension is the grouping used by an aggregation.
type Dimension int

const (
	GroupByYear Dimension = iota
	GroupByMonth
	GroupByQuarter
	GroupBySymbol
)

func (d Dimension) String() string {
	switch d {
	case GroupByYear:
		return "year"
	case GroupByMonth:
		return "month"
	case GroupByQuarter:
		return "quarter"
	case GroupBySymbol:
		return "symbol"
	default:
		return "invalid"
	}
}

// GroupKey identifies a bucket. Only the fields relevant to the dimension are set:
// Year for GroupByYear, Year and Month for GroupByMonth, Year and Quarter for
// GroupByQuarter, Symbol for GroupBySymbol.
type GroupKey struct {
	Year    int
	Month   int
	Quarter int
	Symbol  string
}

func (k GroupKey) compare(o GroupKey) int {
	return cmp.Or(
		cmp.Compare(k.Year, o.Year),
		cmp.Compare(k.Month, o.Month),
		cmp.Compare(k.Quarter, o.Quarter),
		cmp.Compare(k.Symbol, o.Symbol),
	)
}

// Bucket is the total and count of records sharing a group key.
type Bucket struct {
	Total Money
	Count int
}

// Aggregation maps group keys to buckets. Keys with no record are absent.
type Aggregation struct {
	Dimension Dimension
	buckets   map[GroupKey]Bucket
}

// Get returns the bucket of key, the zero bucket if absent.
func (a Aggregation) Get(key GroupKey) Bucket { return a.buckets[key] }

// Len returns the number of buckets.
func (a Aggregation) Len() int { return len(a.buckets) }

// Keys returns the keys in ascending order of year, month or quarter, then symbol.
func (a Aggregation) Keys() []GroupKey {
	return slices.SortedFunc(maps.Keys(a.buckets), GroupKey.compare)
}

// All iterates over buckets in key order.
func (a Aggregation) All() iter.Seq2[GroupKey, Bucket] {
	return func(yield func(GroupKey, Bucket) bool) {
		for _, k := range a.Keys() {
			if !yield(k, a.buckets[k]) {
				return
			}
		}
	}
}

// Total returns the sum of all buckets.
func (a Aggregation) Total() Money {
	var total Money
	for _, b := range a.buckets {
		total = total.Add(b.Total)
	}
	return total
}

// keyOf returns the group key of a record for dimension d.
func keyOf(rec DividendRecord, d Dimension) GroupKey {
	switch d {
	case GroupByYear:
		return GroupKey{Year: rec.Year()}
	case GroupByMonth:
		return GroupKey{Year: rec.Year(), Month: int(rec.ExDate().Month())}
	case GroupByQuarter:
		return GroupKey{Year: rec.Year(), Quarter: rec.ExDate().Quarter()}
	default:
		return GroupKey{Symbol: rec.Symbol()}
	}
}

// Aggregate groups records along dimension d in a single pass.
// Every record lands in exactly one bucket.
func Aggregate(records iter.Seq[DividendRecord], d Dimension) Aggregation {
	a := Aggregation{Dimension: d, buckets: make(map[GroupKey]Bucket)}
	for rec := range records {
		k := keyOf(rec, d)
		b := a.buckets[k]
		b.Total = b.Total.Add(rec.Total())
		b.Count++
		a.buckets[k] = b
	}
	return a
}

// Aggregator computes aggregations of a snapshot.
//
// With a positive TTL results are memoized per dimension and snapshot
// revision, any mutation of the snapshot invalidates them. A zero TTL
// recomputes on every call.
type Aggregator struct {
	snapshot Snapshot
	memo     *cache.Cache
}

// NewAggregator returns an aggregator over s.
func NewAggregator(s Snapshot, ttl time.Duration) *Aggregator {
	a := &Aggregator{snapshot: s}
	if ttl > 0 {
		a.memo = cache.New(ttl, 2*ttl)
	}
	return a
}

// Aggregate returns the aggregation of the whole snapshot along d.
func (a *Aggregator) Aggregate(d Dimension) Aggregation {
	if a.memo == nil {
		return Aggregate(a.snapshot.Records(), d)
	}
	key := fmt.Sprintf("%d@%d", d, a.snapshot.Revision())
	if v, found := a.memo.Get(key); found {
		return v.(Aggregation)
	}
	defer trackTime("aggregate by "+d.String(), time.Now())
	agg := Aggregate(a.snapshot.Records(), d)
	a.memo.Set(key, agg, cache.DefaultExpiration)
	return agg
}

// AggregateWhere aggregates the records accepted by filters. It is never memoized.
func (a *Aggregator) AggregateWhere(d Dimension, filters ...func(DividendRecord) bool) Aggregation {
	return Aggregate(a.snapshot.Records(filters...), d)
}

// trackTime logs the time elapsed since start at debug level.
func trackTime(name string, start time.Time) {
	log.Debugf("%s took %d ms", name, time.Since(start).Milliseconds())
}
