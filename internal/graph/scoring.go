package graph

import (
	"fmt"
	"math"
)

// PathPolicy holds the tunable constants of path scoring and enumeration
type PathPolicy struct {
	LengthWeight    float64 `json:"lengthWeight"`
	WeakestWeight   float64 `json:"weakestWeight"`
	InfluenceWeight float64 `json:"influenceWeight"`
	NegativePenalty int     `json:"negativePenalty"`
	CapBase         int     `json:"capBase"`
	CapPerWeight    int     `json:"capPerWeight"`
	MaxTieExpansion int     `json:"maxTieExpansion"`
}

// DefaultPathPolicy returns the default scoring constants
func DefaultPathPolicy() PathPolicy {
	return PathPolicy{
		LengthWeight:    0.40,
		WeakestWeight:   0.35,
		InfluenceWeight: 0.25,
		NegativePenalty: 15,
		CapBase:         40,
		CapPerWeight:    6,
		MaxTieExpansion: 64,
	}
}

// ScorePath computes the 0-100 success likelihood of a path.
// Shorter paths, a stronger weakest link and influential intermediaries raise the
// score; each negative edge subtracts NegativePenalty. The weakest link also caps it.
func ScorePath(hops, weakest, negatives int, avgInfluence float64, policy PathPolicy) int {
	if hops <= 0 {
		return 100
	}
	lengthFactor := 1.0 / float64(hops)
	weakFactor := clamp(float64(weakest)/MaxWeight, 0, 1)
	influenceFactor := clamp(avgInfluence/MaxInfluence, 0, 1)

	raw := 100 * (policy.LengthWeight*lengthFactor +
		policy.WeakestWeight*weakFactor +
		policy.InfluenceWeight*influenceFactor)
	score := int(math.Round(raw)) - policy.NegativePenalty*negatives

	if limit := policy.CapBase + policy.CapPerWeight*weakest; score > limit {
		score = limit
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// EstimateTimeline buckets a hop count into a coarse duration label
func EstimateTimeline(hops int) string {
	switch {
	case hops <= 0:
		return "immediate"
	case hops == 1:
		return "1–2 weeks"
	case hops == 2:
		return "3–4 weeks"
	default:
		return "6+ weeks"
	}
}

func connectionContext(e Edge) string {
	ctx := fmt.Sprintf("%s, %s", e.Type, e.EffectiveSentiment())
	if last, ok := e.LastInteraction(); ok {
		ctx += fmt.Sprintf("; last: %s on %s", last.Type, last.Date.Format("2006-01-02"))
	}
	return ctx
}

// recommendation suggests one action for traversing e from one node to the next
func recommendation(from, to Node, e Edge) string {
	switch e.EffectiveSentiment() {
	case SentimentNegative:
		return fmt.Sprintf("Neutralize the objection between %s and %s (%s) before proceeding", from.Label, to.Label, e.Type)
	case SentimentPositive:
		if e.IsStrong() {
			return fmt.Sprintf("Leverage %s's strong %s relationship with %s", from.Label, e.Type, to.Label)
		}
		return fmt.Sprintf("Cultivate the %s relationship between %s and %s before relying on it", e.Type, from.Label, to.Label)
	default:
		return fmt.Sprintf("Brief %s through %s to move them from neutral toward support", to.Label, from.Label)
	}
}
