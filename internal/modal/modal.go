// Package modal locates modal-verb anchor positions in statutory text.
package modal

import "regexp"

// Kind identifies which modal lexeme an anchor matched.
type Kind string

const (
	Shall               Kind = "shall"
	Must                Kind = "must"
	MayNot              Kind = "may_not"
	MayOnly             Kind = "may_only"
	May                 Kind = "may"
	IsLiable            Kind = "is_liable"
	RemainsResponsible  Kind = "remains_responsible"
	DutyOf              Kind = "duty_of"
	HasPowerTo          Kind = "has_power_to"
)

// Anchor is an index into the scanned text marking a single modal-verb
// occurrence.
type Anchor struct {
	Kind   Kind
	Offset int
	Length int
}

// lexicon lists modal surface forms in priority order: multi-word modals
// that share a prefix with a shorter one ("may not", "may only") are listed
// before the shorter "may" so longest-match wins at identical offsets.
// Go's regexp alternation takes the first matching branch, not the longest,
// so source order IS match-priority order here.
var lexicon = []struct {
	kind    Kind
	pattern string
	exact   *regexp.Regexp
}{
	{kind: DutyOf, pattern: `it shall be the duty of`},
	{kind: HasPowerTo, pattern: `has the power to`},
	{kind: RemainsResponsible, pattern: `remains responsible`},
	{kind: IsLiable, pattern: `is liable`},
	{kind: MayNot, pattern: `may not`},
	{kind: MayOnly, pattern: `may only`},
	{kind: Shall, pattern: `shall`},
	{kind: Must, pattern: `must`},
	{kind: May, pattern: `may`},
}

var anchorRegex = regexp.MustCompile(buildSource())

func init() {
	for i, m := range lexicon {
		lexicon[i].exact = regexp.MustCompile(`(?i)^` + m.pattern + `$`)
	}
}

func buildSource() string {
	src := `(?i)\b(`
	for i, m := range lexicon {
		if i > 0 {
			src += "|"
		}
		src += m.pattern
	}
	src += `)\b`
	return src
}

// kindFor maps a matched anchor's text back to its Kind, since the
// alternation above loses which branch fired.
func kindFor(matched string) Kind {
	for _, m := range lexicon {
		if m.exact.MatchString(matched) {
			return m.kind
		}
	}
	return ""
}

// Index builds the list of Anchors for text, in text order. At identical
// offsets only one anchor is ever produced (the alternation is evaluated
// left-to-right and lexicon order already encodes longest-match-wins), so
// no further tie-breaking is required downstream.
func Index(text string) []Anchor {
	if text == "" {
		return nil
	}
	locs := anchorRegex.FindAllStringIndex(text, -1)
	if locs == nil {
		return nil
	}
	anchors := make([]Anchor, 0, len(locs))
	for _, loc := range locs {
		matched := text[loc[0]:loc[1]]
		anchors = append(anchors, Anchor{
			Kind:   kindFor(matched),
			Offset: loc[0],
			Length: loc[1] - loc[0],
		})
	}
	return anchors
}
