package graph

import (
	"sort"
	"time"
)

const dayMs = 86_400_000

// DormantRelationship is a strong relationship with no recent interaction
type DormantRelationship struct {
	EdgeID          string `json:"edgeId"`
	Source          string `json:"source"`
	Target          string `json:"target"`
	Weight          int    `json:"weight"`
	DaysSinceTouch  int64  `json:"daysSinceTouch"`
	NeverInteracted bool   `json:"neverInteracted"`
}

// recentActivity counts interactions dated within (now-window, now]
func recentActivity(edges []Edge, now time.Time, window time.Duration) int {
	from := now.Add(-window)
	count := 0
	for _, e := range edges {
		for _, in := range e.InteractionHistory {
			if in.Date.After(from) && !in.Date.After(now) {
				count++
			}
		}
	}
	return count
}

// dormantRelationships finds strong edges not touched within staleDays.
// Edges with no history at all are reported with NeverInteracted set.
func dormantRelationships(edges []Edge, now time.Time, staleDays int) []DormantRelationship {
	if staleDays <= 0 {
		return []DormantRelationship{}
	}
	nowMs := now.UnixMilli()
	thresholdMs := int64(staleDays) * dayMs

	out := []DormantRelationship{}
	for _, e := range edges {
		if !e.IsStrong() {
			continue
		}
		last, ok := e.LastInteraction()
		if !ok {
			out = append(out, DormantRelationship{
				EdgeID: e.ID, Source: e.Source, Target: e.Target,
				Weight: e.Weight, NeverInteracted: true,
			})
			continue
		}
		ageMs := nowMs - last.Date.UnixMilli()
		if ageMs <= thresholdMs {
			continue
		}
		out = append(out, DormantRelationship{
			EdgeID: e.ID, Source: e.Source, Target: e.Target,
			Weight: e.Weight, DaysSinceTouch: ageMs / dayMs,
		})
	}

	// Known-stale first, longest silence first; never-touched after
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NeverInteracted != out[j].NeverInteracted {
			return !out[i].NeverInteracted
		}
		return out[i].DaysSinceTouch > out[j].DaysSinceTouch
	})
	return out
}
