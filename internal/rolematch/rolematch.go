// Package rolematch finds the actors that hold a given RoleKind in a block
// of statutory text. Actors are sought in the subject region immediately
// before each modal anchor, so only text near an anchor is ever scanned or
// refined, and an actor mentioned only after the modal — the object of the
// clause — is never reported as its holder.
package rolematch

import (
	"strings"
	"sync"

	"github.com/shotleylegal/taxaengine/internal/actorlib"
	"github.com/shotleylegal/taxaengine/internal/clause"
	"github.com/shotleylegal/taxaengine/internal/modal"
	"github.com/shotleylegal/taxaengine/internal/rolekind"
)

// WindowLeft budgets the subject capture left of an anchor, WindowRight
// the action capture to its right. Texts longer than the window threshold
// bump Metrics.Windowed per anchor, flagging records large enough that the
// anchor windows, not the text, bound the per-record work.
const (
	DefaultWindowThreshold = 50000
	WindowLeft             = 120
	WindowRight            = 240
)

// Options carries the caller-configurable budgets; a zero Options uses the
// package defaults throughout.
type Options struct {
	WindowThreshold int
	Clause          clause.Options
}

func (o Options) withDefaults() Options {
	if o.WindowThreshold <= 0 {
		o.WindowThreshold = DefaultWindowThreshold
	}
	return o
}

// Match is one actor-holds-role finding: the actor label, the RoleKind it
// was found in, the refined clause describing the obligation, and the raw
// modal kind the anchor carried (duty_type reclassification reads this).
type Match struct {
	Actor     string
	Kind      rolekind.Kind
	Clause    string
	ModalKind modal.Kind
}

// PatternAttempt records one pattern source the matcher tried, with Failed
// set when the source never compiled and was skipped.
type PatternAttempt struct {
	Source string
	Failed bool
}

// Metrics accumulates counts and attempted pattern sources across a batch
// run, for the pipeline driver's end-of-run summary log line. Safe for
// concurrent use; callers share one Metrics across worker goroutines.
type Metrics struct {
	mu           sync.Mutex
	AnchorsSeen  int
	Windowed     int
	MatchesFound int
	Patterns     []PatternAttempt
}

func (m *Metrics) addAnchors(n int) {
	m.mu.Lock()
	m.AnchorsSeen += n
	m.mu.Unlock()
}

func (m *Metrics) addWindowed(n int) {
	m.mu.Lock()
	m.Windowed += n
	m.mu.Unlock()
}

func (m *Metrics) addMatches(n int) {
	m.mu.Lock()
	m.MatchesFound += n
	m.mu.Unlock()
}

func (m *Metrics) addPatterns(attempts []PatternAttempt) {
	m.mu.Lock()
	m.Patterns = append(m.Patterns, attempts...)
	m.mu.Unlock()
}

// modalsForKind restricts which modal anchors are eligible for each
// RoleKind's pass, so a "shall"/"must" anchor near a governed actor cannot
// surface under both the Duty and Right passes (they share the Governed
// universe), and an "is liable"/"remains responsible" anchor near a
// government actor cannot surface under both the Responsibility and Power
// passes (they share the Government universe). "may"/"may not"/"may only"
// are carried by both Right and Power: these read as an entitlement unless
// negated, in which case DutyTypeForModal reclassifies the match into the
// obligation-bearing kind for that actor universe.
var modalsForKind = map[rolekind.Kind]map[modal.Kind]bool{
	rolekind.Duty: {
		modal.Shall:  true,
		modal.Must:   true,
		modal.DutyOf: true,
	},
	rolekind.Right: {
		modal.May:     true,
		modal.MayNot:  true,
		modal.MayOnly: true,
	},
	rolekind.Responsibility: {
		modal.IsLiable:           true,
		modal.RemainsResponsible: true,
	},
	rolekind.Power: {
		modal.May:        true,
		modal.MayNot:     true,
		modal.MayOnly:    true,
		modal.HasPowerTo: true,
	},
}

func filterAnchorsForKind(anchors []modal.Anchor, kind rolekind.Kind) []modal.Anchor {
	allowed := modalsForKind[kind]
	if len(allowed) == 0 {
		return anchors
	}
	out := make([]modal.Anchor, 0, len(anchors))
	for _, a := range anchors {
		if allowed[a.Kind] {
			out = append(out, a)
		}
	}
	return out
}

// FindRoleHolders scans text for the actors in actorLabels that hold kind.
// For each modal anchor eligible for kind, holders are sought in the
// subject region immediately before the anchor, and the clause is refined
// from the anchor's own capture slice. actorLabels is the caller-pre-
// extracted subset relevant to kind's actor universe (rec.Role for
// duty/right, rec.RoleGvt for responsibility/power); empty actorLabels or
// empty text yield all-empty results. metrics may be nil. It returns the
// deduplicated
// holder labels in first-seen order and the full list of Matches (one per
// actor-per-anchor occurrence, so duty_type reclassification downstream can
// see every modal kind an actor was associated with). Clauses are refined
// using clause's default Options; use FindRoleHoldersWithOptions to supply
// caller-configured budgets.
func FindRoleHolders(kind rolekind.Kind, actorLabels []string, text string, metrics *Metrics) ([]string, []Match) {
	return FindRoleHoldersWithOptions(kind, actorLabels, text, metrics, Options{})
}

// FindRoleHoldersWithOptions is FindRoleHolders with explicit window and
// ClauseRefiner budgets, for callers (the pipeline driver) that load them
// from configuration rather than accepting the package defaults.
func FindRoleHoldersWithOptions(kind rolekind.Kind, actorLabels []string, text string, metrics *Metrics, opts Options) ([]string, []Match) {
	if text == "" || len(actorLabels) == 0 {
		return nil, nil
	}
	opts = opts.withDefaults()

	patterns, failed := actorlib.CustomActorLibraryWithFailures(actorLabels, kind.ActorUniverse())
	if metrics != nil {
		attempts := make([]PatternAttempt, 0, len(patterns)+len(failed))
		for _, p := range patterns {
			attempts = append(attempts, PatternAttempt{Source: p.Regex.String()})
		}
		for _, src := range failed {
			attempts = append(attempts, PatternAttempt{Source: src, Failed: true})
		}
		metrics.addPatterns(attempts)
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	anchors := filterAnchorsForKind(modal.Index(text), kind)
	if metrics != nil {
		metrics.addAnchors(len(anchors))
	}
	if len(anchors) == 0 {
		return nil, nil
	}

	windowed := len(text) > opts.WindowThreshold

	var matches []Match
	seen := map[string]bool{}
	var holders []string

	for _, a := range anchors {
		if windowed && metrics != nil {
			metrics.addWindowed(1)
		}

		actors := subjectActors(patterns, text, a.Offset)
		if len(actors) == 0 {
			continue
		}

		refined := clause.RefineWithContext(captureAround(text, a), kind, text, opts.Clause)

		for _, actor := range actors {
			matches = append(matches, Match{
				Actor:     actor,
				Kind:      kind,
				Clause:    refined,
				ModalKind: a.Kind,
			})
			if !seen[actor] {
				seen[actor] = true
				holders = append(holders, actor)
			}
		}
	}

	if metrics != nil {
		metrics.addMatches(len(matches))
	}
	return holders, matches
}

// captureAround slices the raw capture for one anchor: the subject budget
// to the left, then the action region to the right, cut at the first
// sentence terminator after the anchor (or the action budget). Refining
// from this slice rather than the whole text keeps each anchor's clause
// centred on its own modal — a later sentence's modal must not hijack an
// earlier anchor's clause.
func captureAround(text string, a modal.Anchor) string {
	start := a.Offset - WindowLeft
	if start < 0 {
		start = 0
	}
	end := a.Offset + a.Length + WindowRight
	if end > len(text) {
		end = len(text)
	}
	modalEnd := a.Offset + a.Length
	if idx := strings.IndexAny(text[modalEnd:end], ".;!?"); idx >= 0 {
		end = modalEnd + idx + 1
	}
	return text[start:end]
}

// subjectActors returns the labels whose pattern matches inside the
// subject region immediately left of the modal anchor at modalOffset
// (clamped to WindowLeft), with no sentence terminator between the actor
// and the modal. An actor appearing only after the modal is the object of
// the clause, not its holder, and a terminator between the two means the
// actor belongs to an earlier sentence.
func subjectActors(patterns []actorlib.ActorPattern, text string, modalOffset int) []string {
	start := modalOffset - WindowLeft
	if start < 0 {
		start = 0
	}
	subject := text[start:modalOffset]

	var out []string
	for _, p := range patterns {
		for _, loc := range p.FindUnblacklisted(subject) {
			if !strings.ContainsAny(subject[loc[1]:], ".;!?") {
				out = append(out, p.Label)
				break
			}
		}
	}
	return out
}

// DutyTypeForModal reclassifies a Right- or Power-kind match's duty_type tag
// when its modal anchor was "may not" or "may only": both are restrictive
// modals that read as prohibitions rather than entitlements, so they are
// never tagged Right or Power. A Right match (governed
// actors) becomes Duty; a Power match (government actors) becomes
// Responsibility. Duty and Responsibility matches are never fed a
// "may not"/"may only" anchor to reclassify away from, since
// modalsForKind never includes those modals for those two kinds.
func DutyTypeForModal(kind rolekind.Kind, modalKind modal.Kind) rolekind.Kind {
	if modalKind != modal.MayNot && modalKind != modal.MayOnly {
		return kind
	}
	switch kind {
	case rolekind.Right:
		return rolekind.Duty
	case rolekind.Power:
		return rolekind.Responsibility
	default:
		return kind
	}
}
