package analytics

import (
	"sort"
	"strconv"

	"github.com/obratrack/obratrack/internal/models"
)

// bucketIndex groups into rollup buckets keeping first-seen key order, so that
// stable sorts later break ties by discovery order.
type bucketIndex struct {
	order   []string
	buckets map[string]*models.RollupBucket
}

func newBucketIndex() *bucketIndex {
	return &bucketIndex{buckets: make(map[string]*models.RollupBucket)}
}

func (x *bucketIndex) get(key string) *models.RollupBucket {
	if b, ok := x.buckets[key]; ok {
		return b
	}
	b := &models.RollupBucket{Key: key}
	x.buckets[key] = b
	x.order = append(x.order, key)
	return b
}

// list materializes the buckets in discovery order with guarded progress
// percentages filled in.
func (x *bucketIndex) list() []models.RollupBucket {
	out := make([]models.RollupBucket, 0, len(x.order))
	for _, key := range x.order {
		b := *x.buckets[key]
		b.Allocated = round2(b.Allocated)
		b.Executed = round2(b.Executed)
		b.ProgressPct = round2(pct(b.Executed, b.Allocated))
		out = append(out, b)
	}
	return out
}

// voucherRollup groups every expense of the selection by voucher type; Count is
// the number of expense occurrences.
func voucherRollup(items []aggregate) []models.RollupBucket {
	idx := newBucketIndex()
	for _, it := range items {
		for _, e := range it.Ledger {
			b := idx.get(e.VoucherType)
			b.Executed += e.Amount
			b.Count++
		}
	}
	return sortByExecuted(idx.list(), 0)
}

// lineRollup groups budget lines by name across the selection, capped at the
// top 15 by executed amount.
func lineRollup(items []aggregate) []models.RollupBucket {
	idx := newBucketIndex()
	for _, it := range items {
		for _, l := range it.Metrics.Lines {
			b := idx.get(l.Name)
			b.Allocated += l.Assigned
			b.Executed += l.Executed
			b.Count++
		}
	}
	return sortByExecuted(idx.list(), 15)
}

func locationRollup(items []aggregate) []models.RollupBucket {
	return projectRollup(items, func(m *models.ProjectMetrics) string { return m.Location }, byAllocatedDesc)
}

func responsibleRollup(items []aggregate) []models.RollupBucket {
	return projectRollup(items, func(m *models.ProjectMetrics) string { return m.Responsible }, byAllocatedDesc)
}

// yearRollup groups by planned-start year, ascending. Projects without a start
// date carry no year and are left out of this dimension.
func yearRollup(items []aggregate, projects []models.Project) []models.RollupBucket {
	idx := newBucketIndex()
	for i, it := range items {
		year := projects[i].StartYear()
		if year == 0 {
			continue
		}
		b := idx.get(strconv.Itoa(year))
		b.Allocated += it.Metrics.Allocated
		b.Executed += it.Metrics.Executed
		b.Count++
	}
	buckets := idx.list()
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets
}

func projectRollup(items []aggregate, key func(*models.ProjectMetrics) string, order func([]models.RollupBucket)) []models.RollupBucket {
	idx := newBucketIndex()
	for i := range items {
		m := &items[i].Metrics
		b := idx.get(key(m))
		b.Allocated += m.Allocated
		b.Executed += m.Executed
		b.Count++
	}
	buckets := idx.list()
	order(buckets)
	return buckets
}

func byAllocatedDesc(buckets []models.RollupBucket) {
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Allocated > buckets[j].Allocated })
}

func sortByExecuted(buckets []models.RollupBucket, limit int) []models.RollupBucket {
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Executed > buckets[j].Executed })
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}
