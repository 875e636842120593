// Package clause turns a raw pattern capture into a human-readable clause.
// A refined clause never ends mid-word, always ends on terminal punctuation
// or an explicit ellipsis, and never exceeds the configured length cap.
package clause

import (
	"regexp"
	"strings"

	"github.com/shotleylegal/taxaengine/internal/modal"
	"github.com/shotleylegal/taxaengine/internal/rolekind"
)

// Default character budgets. The pipeline driver may override them via
// taxaconfig; Refine takes them as explicit parameters so the package stays
// side-effect-free.
const (
	DefaultSubjectWindow = 120
	DefaultActionWindow  = 200
	DefaultMaxClauseLen  = 300
)

// shortWordWhitelist lists common short words that are allowed to stand as
// a trailing fragment even though they're ≤3 letters.
var shortWordWhitelist = map[string]bool{
	"the": true, "of": true, "to": true, "in": true, "is": true, "be": true,
	"by": true, "or": true, "an": true, "on": true, "at": true, "as": true,
	"we": true, "us": true, "it": true, "if": true, "no": true, "so": true,
}

var sentenceTerminator = regexp.MustCompile(`[.;!?]`)
var terminalMark = regexp.MustCompile(`[.;!?)\]"]$`)
var leadingArticle = regexp.MustCompile(`^(?i)(the|a|an)\s+(\S)`)
var capitalAfterPeriod = regexp.MustCompile(`[.!?]\s+[A-Z]`)

// Options bundles the configurable budgets; a zero Options uses the package
// defaults.
type Options struct {
	SubjectWindow int
	ActionWindow  int
	MaxClauseLen  int
}

func (o Options) withDefaults() Options {
	if o.SubjectWindow <= 0 {
		o.SubjectWindow = DefaultSubjectWindow
	}
	if o.ActionWindow <= 0 {
		o.ActionWindow = DefaultActionWindow
	}
	if o.MaxClauseLen <= 0 {
		o.MaxClauseLen = DefaultMaxClauseLen
	}
	return o
}

// Refine produces a human-facing clause from raw, or "" if raw is empty or
// carries no modal anchor. The role parameter is accepted so a future
// RoleKind-aware refiner can special-case phrasing per kind; the current
// algorithm is kind-independent.
func Refine(raw string, role rolekind.Kind) string {
	return RefineWithContext(raw, role, "", Options{})
}

// RefineWithContext is Refine plus an optional sectionText to recover an
// action tail when raw's capture ended exactly at the modal, and explicit
// Options.
func RefineWithContext(raw string, _ rolekind.Kind, sectionText string, opts Options) string {
	if raw == "" {
		return ""
	}
	opts = opts.withDefaults()

	offset, length, modalText, ok := findLastModalPosition(raw)
	if !ok {
		return ""
	}

	subject := extractSubject(raw, offset, opts.SubjectWindow)
	action, truncated := extractAction(raw, offset+length, sectionText, opts.ActionWindow)

	combined := combineClause(subject, modalText, action, truncated)
	combined = enforceWordBoundary(combined)
	return truncateSmart(combined, opts.MaxClauseLen)
}

// findLastModalPosition returns the offset, length, and matched text of the
// last (rightmost) modal anchor in raw.
func findLastModalPosition(raw string) (offset, length int, text string, ok bool) {
	anchors := modal.Index(raw)
	if len(anchors) == 0 {
		return 0, 0, "", false
	}
	last := anchors[len(anchors)-1]
	return last.Offset, last.Length, raw[last.Offset : last.Offset+last.Length], true
}

// extractSubject scans left from modalOffset to the nearest sentence
// boundary, capital-after-period, or start of text, clamped to window, then
// strips a leading article if followed by another word.
func extractSubject(raw string, modalOffset, window int) string {
	start := 0
	if modalOffset-window > 0 {
		start = modalOffset - window
	}
	candidate := raw[start:modalOffset]

	// Prefer the nearest sentence boundary within the window.
	if loc := lastSentenceBoundary(candidate); loc >= 0 {
		candidate = candidate[loc:]
	} else if loc := lastCapitalAfterPeriod(candidate); loc >= 0 {
		candidate = candidate[loc:]
	}

	candidate = strings.TrimSpace(candidate)
	if m := leadingArticle.FindStringSubmatchIndex(candidate); m != nil {
		// m[2]:m[3] is capture group 1 (the article itself), so m[3] is the
		// offset right after "the"/"a"/"an" — m[2] is always 0 (the whole
		// match starts at the article) and slicing there would be a no-op.
		candidate = candidate[m[3]:]
	}
	return strings.TrimSpace(candidate)
}

func lastSentenceBoundary(s string) int {
	best := -1
	for _, loc := range sentenceTerminator.FindAllStringIndex(s, -1) {
		end := loc[1]
		if end < len(s) && s[end] == ' ' {
			best = end + 1
		}
	}
	return best
}

func lastCapitalAfterPeriod(s string) int {
	matches := capitalAfterPeriod.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return -1
	}
	last := matches[len(matches)-1]
	// Position of the capital letter itself (last byte of the match).
	return last[1] - 1
}

// extractAction reads rightward from modalEnd up to the next sentence
// terminator or the action window. If raw has nothing after modalEnd and
// sectionText is non-empty, it re-searches sectionText starting at the
// point where raw's capture ended, to recover the sentence tail. Returns
// the action text and whether it was cut short (no terminal punctuation
// found within budget).
func extractAction(raw string, modalEnd int, sectionText string, window int) (string, bool) {
	tail := ""
	if modalEnd < len(raw) {
		tail = raw[modalEnd:]
	}

	if strings.TrimSpace(tail) == "" && sectionText != "" {
		if idx := strings.Index(sectionText, raw); idx >= 0 {
			tailStart := idx + len(raw)
			if tailStart < len(sectionText) {
				tail = sectionText[tailStart:]
			}
		}
	}

	if len(tail) > window {
		tail = tail[:window]
	}

	if loc := sentenceTerminator.FindStringIndex(tail); loc != nil {
		return strings.TrimSpace(tail[:loc[1]]), false
	}
	return strings.TrimSpace(tail), true
}

// combineClause joins subject, modal, and action with single spaces. An
// empty or truncated action gets an explicit "..." appended; an action that
// already ends in terminal punctuation keeps its own terminator. A
// truncated action may end mid-word, so its dangling fragment is stripped
// before the ellipsis goes on — appending "..." straight after "notice wa"
// would smuggle the fragment past the word-boundary check.
func combineClause(subject, modalText, action string, truncated bool) string {
	parts := make([]string, 0, 3)
	if subject != "" {
		parts = append(parts, subject)
	}
	parts = append(parts, modalText)

	if action == "" {
		return strings.Join(parts, " ") + " ..."
	}
	parts = append(parts, action)
	joined := strings.Join(parts, " ")

	if truncated || !terminalMark.MatchString(joined) {
		return stripTrailingFragment(joined) + "..."
	}
	return joined
}

// stripTrailingFragment removes a trailing token of ≤3 letters that is not
// a recognized whole word, along with its preceding space. Applied only to
// text about to receive an ellipsis, so a legitimate trailing modal on the
// empty-action path is never touched.
func stripTrailingFragment(s string) string {
	trimmed := strings.TrimRight(s, " ")
	lastSpace := strings.LastIndexByte(trimmed, ' ')
	lastToken := trimmed
	if lastSpace >= 0 {
		lastToken = trimmed[lastSpace+1:]
	}
	if len(lastToken) <= 3 && isAllLetters(lastToken) && !shortWordWhitelist[strings.ToLower(lastToken)] {
		if lastSpace >= 0 {
			return strings.TrimRight(trimmed[:lastSpace], " ")
		}
		return ""
	}
	return trimmed
}

// enforceWordBoundary strips a trailing token of length ≤3 letters that is
// not a whole word. This boundary check is the source of truth; any
// fixed list of known-bad fragments a caller keeps is a redundancy on top
// of it.
func enforceWordBoundary(clause string) string {
	if clause == "" {
		return clause
	}
	if terminalMark.MatchString(clause) || strings.HasSuffix(clause, "...") {
		return clause
	}

	trimmed := strings.TrimRight(clause, " ")
	lastSpace := strings.LastIndexByte(trimmed, ' ')
	lastToken := trimmed
	if lastSpace >= 0 {
		lastToken = trimmed[lastSpace+1:]
	}

	if len(lastToken) <= 3 && isAllLetters(lastToken) && !shortWordWhitelist[strings.ToLower(lastToken)] {
		if lastSpace >= 0 {
			return strings.TrimRight(trimmed[:lastSpace], " ") + "..."
		}
		return "..."
	}
	return clause
}

func isAllLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}

// truncateSmart cuts clause to at most max characters, preferring the last
// sentence terminator at or before max; falling back to a hard cut at
// max-3 plus "...".
func truncateSmart(clause string, max int) string {
	if len(clause) <= max {
		return clause
	}

	window := clause[:max]
	if loc := lastSentenceTerminatorIdx(window); loc >= 0 {
		return clause[:loc+1]
	}

	if max <= 3 {
		return clause[:max]
	}
	return strings.TrimRight(clause[:max-3], " ") + "..."
}

func lastSentenceTerminatorIdx(s string) int {
	locs := sentenceTerminator.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return -1
	}
	return locs[len(locs)-1][0]
}
