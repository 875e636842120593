// Package actorlib owns the static dictionary of UK legislative actor labels
// and their surface-form regex fragments. The compiled pattern table is
// built once via sync.Once and is read-only afterwards, so concurrent
// workers share it without locks.
package actorlib

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// ActorKind selects which universe of actors a RoleKind draws from:
// governed actors for duty/right, government actors for responsibility/power.
type ActorKind string

const (
	Governed   ActorKind = "governed"
	Government ActorKind = "government"
)

// ActorPattern pairs a stable ActorLabel with its compiled surface-form
// pattern. The fragment always carries a leading word-boundary assertion so
// a capitalized substring of another word cannot match. ExcludedAfter
// carries the label's blacklist phrases along so a caller scanning a
// caller-resolved pattern set can still apply it.
type ActorPattern struct {
	Label         string
	Regex         *regexp.Regexp
	ExcludedAfter []string
}

// dictEntry's excludedAfter suppresses an actor match when the matched text
// is immediately followed (ignoring intervening whitespace) by one of these
// phrases — "Public" before "interest" is a noun phrase, not an actor.
type dictEntry struct {
	kind          ActorKind
	fragment      string   // regex source, anchored with a leading boundary
	excludedAfter []string // suppress a match whose tail matches one of these
}

// boundary is the leading assertion every actor fragment carries: a
// non-capturing alternation of punctuation, whitespace, or start-of-text.
const boundary = `(?:^|[\s.,;:!?()\[\]"'])`

var dictionary = map[string]dictEntry{
	"Org: Employer":                 {Governed, boundary + `[Ee]mployers?`, nil},
	"Ind: Employee":                 {Governed, boundary + `[Ee]mployees?`, nil},
	"Ind: Self-Employed":            {Governed, boundary + `self-employed(?: person)?s?`, nil},
	"SC: C: Principal Contractor":   {Governed, boundary + `[Pp]rincipal [Cc]ontractors?`, nil},
	"SC: C: Contractor":             {Governed, boundary + `[Cc]ontractors?`, nil},
	"SC: Designer":                  {Governed, boundary + `[Dd]esigners?`, nil},
	"SC: Manufacturer":              {Governed, boundary + `[Mm]anufacturers?`, nil},
	"SC: Supplier":                  {Governed, boundary + `[Ss]uppliers?`, nil},
	"SC: Installer":                 {Governed, boundary + `[Ii]nstallers?`, nil},
	"Org: Occupier":                 {Governed, boundary + `[Oo]ccupiers?`, nil},
	"Org: Person in Control":        {Governed, boundary + `person(?:s)? in control`, nil},
	"Org: Duty Holder":              {Governed, boundary + `duty[- ]holders?`, nil},
	"Public":                        {Governed, boundary + `[Pp]ublic`, []string{"interest"}},
	"Gvt: Authority":                {Government, boundary + `[Aa]uthority`, nil},
	"Gvt: Authority: Planning":      {Government, boundary + `planning authority`, nil},
	// A Secretary of State is legally a Minister of the Crown, so the surface
	// form "Secretary of State" is folded into this label's pattern too —
	// callers that pre-extract role_gvt = ["Gvt: Minister"] must still match
	// text that only ever spells out the holder's formal title.
	"Gvt: Minister":                 {Government, boundary + `(?:[Mm]inister(?:s)?|Secretary of State)`, nil},
	"Gvt: Secretary of State":       {Government, boundary + `Secretary of State`, nil},
	"Gvt: Enforcing Authority":      {Government, boundary + `enforcing authority`, nil},
	"Gvt: Inspector":                {Government, boundary + `[Ii]nspector(?:s)?`, nil},
}

var (
	compileOnce   sync.Once
	compiled      map[string]ActorPattern
	compileErrs   []error
	failedSources map[string]string
)

func compileAll() {
	compiled = make(map[string]ActorPattern, len(dictionary))
	failedSources = map[string]string{}
	for label, entry := range dictionary {
		re, err := regexp.Compile(entry.fragment)
		if err != nil {
			compileErrs = append(compileErrs, err)
			failedSources[label] = entry.fragment
			continue
		}
		compiled[label] = ActorPattern{Label: label, Regex: re, ExcludedAfter: entry.excludedAfter}
	}
}

// Compile forces (and memoizes) pattern compilation, returning every
// compilation failure at once. Intended for a process-startup self-check
// and for tests; a broken pattern is skipped, never fatal.
func Compile() []error {
	compileOnce.Do(compileAll)
	return compileErrs
}

// Labels returns every known ActorLabel, sorted, for catalog/CLI use.
func Labels() []string {
	Compile()
	labels := make([]string, 0, len(dictionary))
	for label := range dictionary {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// CustomActorLibrary resolves requested labels against the dictionary,
// filtered to the given ActorKind, in the dictionary's stable label order.
// Unknown labels are silently skipped — the caller may request labels the
// dictionary has never heard of (e.g. from an older persisted record).
func CustomActorLibrary(labels []string, kind ActorKind) []ActorPattern {
	patterns, _ := CustomActorLibraryWithFailures(labels, kind)
	return patterns
}

// CustomActorLibraryWithFailures is CustomActorLibrary plus the pattern
// sources of any requested label whose fragment never compiled, so callers
// keeping a pattern-attempt accumulator can record the skips.
func CustomActorLibraryWithFailures(labels []string, kind ActorKind) ([]ActorPattern, []string) {
	Compile()
	wanted := make(map[string]bool, len(labels))
	for _, l := range labels {
		wanted[l] = true
	}

	var out []ActorPattern
	var failed []string
	ordered := Labels()
	for _, label := range ordered {
		if !wanted[label] {
			continue
		}
		entry := dictionary[label]
		if entry.kind != kind {
			continue
		}
		if p, ok := compiled[label]; ok {
			out = append(out, p)
		} else if src, bad := failedSources[label]; bad {
			failed = append(failed, src)
		}
	}
	return out, failed
}

// GovernedActorsInText scans the full text with every governed pattern,
// returning labels whose pattern fires at least once, applying the
// blacklist filter. Empty text returns nil.
func GovernedActorsInText(text string) []string {
	return actorsInText(text, Governed)
}

// GovernmentActorsInText is the government-universe analog of
// GovernedActorsInText.
func GovernmentActorsInText(text string) []string {
	return actorsInText(text, Government)
}

func actorsInText(text string, kind ActorKind) []string {
	if text == "" {
		return nil
	}
	return MatchingLabels(CustomActorLibrary(Labels(), kind), text)
}

// MatchingLabels scans text against each of patterns in order, applying
// each pattern's blacklist filter, and returns the labels that fire at
// least once. This is the shared scan primitive behind both the
// full-dictionary GovernedActorsInText/GovernmentActorsInText and a
// caller-resolved CustomActorLibrary result. Empty text returns nil.
func MatchingLabels(patterns []ActorPattern, text string) []string {
	if text == "" {
		return nil
	}
	var hits []string
	for _, p := range patterns {
		if len(p.FindUnblacklisted(text)) > 0 {
			hits = append(hits, p.Label)
		}
	}
	return hits
}

// FindUnblacklisted returns the [start, end) index pair of every match of
// p in text that is not immediately followed (ignoring whitespace) by one
// of p's excluded phrases. Go's RE2 engine has no lookaround, so the
// exclusion is applied as a post-match trailing-context check. Callers that
// care about match position, not just presence, use this directly.
func (p ActorPattern) FindUnblacklisted(text string) [][]int {
	locs := p.Regex.FindAllStringIndex(text, -1)
	if len(p.ExcludedAfter) == 0 {
		return locs
	}

	var out [][]int
	for _, loc := range locs {
		tail := strings.TrimLeft(text[loc[1]:], " \t\n")
		excluded := false
		for _, phrase := range p.ExcludedAfter {
			if strings.HasPrefix(strings.ToLower(tail), strings.ToLower(phrase)) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, loc)
		}
	}
	return out
}

