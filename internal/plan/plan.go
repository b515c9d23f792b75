// Package plan decides how many items of each bucket the next feed batch
// should contain. Planning is pure: the same inputs always yield the same plan.
package plan

import (
	"math"
	"sort"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/signals"
)

// Bucket is a planning slot. Most buckets map 1:1 to a content kind;
// related and topic produce wiki articles chosen for a different reason.
type Bucket string

const (
	BucketNews    Bucket = "news"
	BucketWiki    Bucket = "wiki"
	BucketRelated Bucket = "related"
	BucketTopic   Bucket = "topic"
)

// FillerBucket returns the bucket for a filler kind.
func FillerBucket(k content.Kind) Bucket { return Bucket(k) }

// FillerBuckets returns one bucket per filler kind, in catalogue order.
func FillerBuckets() []Bucket {
	out := make([]Bucket, len(content.FillerKinds))
	for i, k := range content.FillerKinds {
		out[i] = FillerBucket(k)
	}
	return out
}

// Kind returns the content kind a bucket produces.
func (b Bucket) Kind() content.Kind {
	switch b {
	case BucketRelated, BucketTopic, BucketWiki:
		return content.KindWiki
	}
	return content.Kind(b)
}

// IsFiller reports whether b is one of the filler buckets.
func (b Bucket) IsFiller() bool {
	for _, k := range content.FillerKinds {
		if b == Bucket(k) {
			return true
		}
	}
	return false
}

// BucketFor maps an item kind back to its default bucket.
func BucketFor(k content.Kind) Bucket {
	if k == content.KindWiki {
		return BucketWiki
	}
	return Bucket(k)
}

// Plan maps buckets to item counts.
type Plan map[Bucket]int

// Total returns the sum of all counts.
func (p Plan) Total() int {
	n := 0
	for _, c := range p {
		n += c
	}
	return n
}

// Buckets returns buckets with a positive count, sorted by name.
func (p Plan) Buckets() []Bucket {
	out := make([]Bucket, 0, len(p))
	for b, c := range p {
		if c > 0 {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Config holds the tunable ratios and cadences.
type Config struct {
	NewsRatio    float64 // non-positional share of news
	RelatedRatio float64
	FillerRatio  float64

	// NewsCadence lists periods; a batch whose window holds a multiple of
	// any of them gets one news item in positional mode.
	NewsCadence  []int
	TopicCadence int
	TopicBurst   int

	WikiFloor float64
	NewsFloor float64
	FactFloor float64
}

// DefaultConfig returns the production split.
func DefaultConfig() Config {
	return Config{
		NewsRatio:    0.15,
		RelatedRatio: 0.10,
		FillerRatio:  0.10,
		NewsCadence:  []int{17, 19},
		TopicCadence: 17,
		TopicBurst:   2,
		WikiFloor:    0.30,
		NewsFloor:    0.10,
		FactFloor:    0.05,
	}
}

// Planner computes distribution plans.
type Planner struct {
	cfg Config
}

// New creates a Planner.
func New(cfg Config) *Planner {
	return &Planner{cfg: cfg}
}

// Plan returns the per-bucket allocation for a batch of total items starting
// at position. sig may be nil for anonymous users. When usePosition is set,
// news and topic bursts follow the position cadences.
func (p *Planner) Plan(total, position int, sig *signals.Set, usePosition bool) Plan {
	out := Plan{}
	if total <= 0 {
		return out
	}
	if position < 0 {
		position = 0
	}

	positives := sig.PositiveCounts()
	if sumCounts(positives) > 0 {
		p.personalized(out, total, positives)
	} else {
		p.baseline(out, total, position, usePosition)
	}

	if usePosition && p.cfg.TopicBurst > 0 && windowHits(position, total, p.cfg.TopicCadence) {
		out[BucketTopic] = p.cfg.TopicBurst
	}

	for bucket := range blockedBuckets(sig) {
		if n := out[bucket]; n > 0 {
			out[BucketWiki] += n
			delete(out, bucket)
		}
	}

	fit(out, total)
	return out
}

func (p *Planner) baseline(out Plan, total, position int, usePosition bool) {
	if usePosition {
		for _, c := range p.cfg.NewsCadence {
			if windowHits(position, total, c) {
				out[BucketNews] = 1
				break
			}
		}
	} else {
		out[BucketNews] = share(total, p.cfg.NewsRatio)
	}
	out[BucketRelated] = share(total, p.cfg.RelatedRatio)

	fillers := FillerBuckets()
	n := share(total, p.cfg.FillerRatio)
	offset := (position / total) % len(fillers)
	for i := 0; i < n; i++ {
		out[fillers[(offset+i)%len(fillers)]]++
	}
}

func (p *Planner) personalized(out Plan, total int, positives map[content.Kind]int) {
	sum := float64(sumCounts(positives))
	ratios := make(map[Bucket]float64)
	for kind, n := range positives {
		ratios[BucketFor(kind)] += float64(n) / sum
	}
	ratios[BucketWiki] = math.Max(ratios[BucketWiki], p.cfg.WikiFloor)
	ratios[BucketNews] = math.Max(ratios[BucketNews], p.cfg.NewsFloor)
	fact := FillerBucket(content.KindFact)
	ratios[fact] = math.Max(ratios[fact], p.cfg.FactFloor)

	assigned := 0.0
	for _, r := range ratios {
		assigned += r
	}
	ratios[BucketRelated] = math.Max(0, 1-assigned)
	if assigned > 1 {
		for b := range ratios {
			ratios[b] /= assigned
		}
	}

	for b, r := range ratios {
		if b == BucketWiki {
			continue
		}
		if n := share(total, r); n > 0 {
			out[b] = n
		}
	}
}

// trimOrder lists what gives way first when a small batch cannot fit
// every bucket and still keep one wiki item.
func trimOrder() []Bucket {
	fillers := FillerBuckets()
	order := make([]Bucket, 0, len(fillers)+3)
	for i := len(fillers) - 1; i >= 0; i-- {
		order = append(order, fillers[i])
	}
	return append(order, BucketRelated, BucketTopic, BucketNews)
}

// fit makes wiki absorb the remainder, clamps negatives and guarantees
// at least one wiki item.
func fit(out Plan, total int) {
	for b, n := range out {
		if n <= 0 {
			delete(out, b)
		}
	}
	delete(out, BucketWiki)

	others := out.Total()
	for _, b := range trimOrder() {
		for others > total-1 && out[b] > 0 {
			out[b]--
			others--
		}
		if out[b] == 0 {
			delete(out, b)
		}
	}
	out[BucketWiki] = max(0, total-others)
}

// blockedBuckets returns the non-wiki buckets the user has blocked. Wiki is
// the fold target and cannot be blocked.
func blockedBuckets(sig *signals.Set) map[Bucket]bool {
	out := make(map[Bucket]bool)
	for kind := range sig.Blocked() {
		if kind == content.KindWiki {
			continue
		}
		out[BucketFor(kind)] = true
	}
	return out
}

// windowHits reports whether [position, position+total) holds a multiple of period.
func windowHits(position, total, period int) bool {
	if period <= 0 || total <= 0 {
		return false
	}
	next := ((position + period - 1) / period) * period
	return next < position+total
}

func share(total int, ratio float64) int {
	if ratio <= 0 {
		return 0
	}
	return max(0, int(math.Floor(float64(total)*ratio)))
}

func sumCounts(m map[content.Kind]int) int {
	n := 0
	for _, c := range m {
		n += c
	}
	return n
}
