// Package dutytype sorts and filters the duty_type tag set a record
// accumulates across all four RoleKind passes.
package dutytype

import (
	"sort"

	"github.com/shotleylegal/taxaengine/internal/rolekind"
)

var priority = map[string]int{
	rolekind.Duty.Tag():           0,
	rolekind.Right.Tag():          1,
	rolekind.Responsibility.Tag(): 2,
	rolekind.Power.Tag():          3,
}

// Sort returns tags filtered to the known DRRP vocabulary and ordered
// Duty < Right < Responsibility < Power, stable on original position among
// equal priorities.
func Sort(tags []string) []string {
	kept := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := priority[t]; ok {
			kept = append(kept, t)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return priority[kept[i]] < priority[kept[j]]
	})
	return kept
}

// Dedup removes repeated tags while preserving the first occurrence's
// position, for accumulation across multiple RoleMatcher passes before the
// final Sort.
func Dedup(tags []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
