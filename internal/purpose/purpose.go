// Package purpose classifies section (or title) text into the 15-value
// PurposeTag closed set, with Amendment detection short-circuiting every
// other category.
package purpose

import (
	"regexp"
	"sort"
)

// Tag is one of the 15 closed PurposeTag values. The separator inside a
// tag is literal "+", never ", ".
type Tag string

const (
	Amendment                    Tag = "Amendment"
	EnactmentCitationCommencement Tag = "Enactment+Citation+Commencement"
	InterpretationDefinition     Tag = "Interpretation+Definition"
	ApplicationScope             Tag = "Application+Scope"
	Extent                       Tag = "Extent"
	Exemption                    Tag = "Exemption"
	RepealRevocation             Tag = "Repeal+Revocation"
	TransitionalArrangement      Tag = "Transitional Arrangement"
	ChargeFee                    Tag = "Charge+Fee"
	Offence                      Tag = "Offence"
	EnforcementProsecution       Tag = "Enforcement+Prosecution"
	DefenceAppeal                Tag = "Defence+Appeal"
	PowerConferred               Tag = "Power Conferred"
	ProcessRuleConstraintCondition Tag = "Process+Rule+Constraint+Condition"
	Commencement                 Tag = "Commencement"
)

// DefaultTag is returned when no pattern fires.
const DefaultTag = ProcessRuleConstraintCondition

type rule struct {
	tag         Tag
	pattern     string
	re          *regexp.Regexp
	titleScoped bool
}

// amendmentPatterns are checked first and short-circuit every other test.
var amendmentPatterns = []string{
	`(?i)\bsubstitut(e|ion)\b`,
	`(?i)\binsert(ion|ed)?\b`,
	`(?i)\bomit(ted|s)?\b`,
	`(?i)\bas follows\b`,
	`(?i)\bfor\b.+\bsubstitute\b`,
	`(?i)\bamend(ments?|ed|s)?\b`,
}

var amendmentRe []*regexp.Regexp

var rules = []*rule{
	{tag: EnactmentCitationCommencement, pattern: `(?i)\b(this (act|order|regulation)s? (may be cited|come[s]? into force))\b`, titleScoped: true},
	{tag: InterpretationDefinition, pattern: `(?i)\b(in this (act|order|regulation)s?,?\s*["“]?\w+["”]?\s*means|interpretation)\b`},
	{tag: ApplicationScope, pattern: `(?i)\b(this (act|order|regulation)s? applies? to|application of this)\b`, titleScoped: true},
	{tag: Extent, pattern: `(?i)\bextends? to (england|wales|scotland|northern ireland|the united kingdom)\b`, titleScoped: true},
	{tag: Exemption, pattern: `(?i)\b(exempt(ion|ed)?|does not apply)\b`},
	{tag: RepealRevocation, pattern: `(?i)\b(repeal(ed|s)?|revo(?:ke|ked|cation))\b`, titleScoped: true},
	{tag: TransitionalArrangement, pattern: `(?i)\b(transitional|saving)\b.*\b(provision|arrangement)s?\b`, titleScoped: true},
	{tag: ChargeFee, pattern: `(?i)\b(charge|fee)s?\b.*\b(payable|imposed|levied)\b`},
	{tag: Offence, pattern: `(?i)\b(guilty of an offence|commits? an offence)\b`},
	{tag: EnforcementProsecution, pattern: `(?i)\b(enforc(e|ement)|prosecut(e|ion))\b`},
	{tag: DefenceAppeal, pattern: `(?i)\b(defence|appeal)s?\b`},
	{tag: PowerConferred, pattern: `(?i)\b(power(s)? (conferred|to)|may by regulations)\b`},
	{tag: Commencement, pattern: `(?i)\bcomes? into force\b`},
}

func init() {
	amendmentRe = make([]*regexp.Regexp, len(amendmentPatterns))
	for i, p := range amendmentPatterns {
		amendmentRe[i] = regexp.MustCompile(p)
	}
	for _, r := range rules {
		r.re = regexp.MustCompile(r.pattern)
	}
}

func isAmendment(text string) bool {
	for _, re := range amendmentRe {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Classify returns the purpose tags firing in text. Amendment
// short-circuits: if any amendment cue fires, the result is exactly
// ["Amendment"] regardless of any other cue. Empty text returns nil. If
// nothing fires, returns [DefaultTag].
func Classify(text string) []Tag {
	if text == "" {
		return nil
	}
	if isAmendment(text) {
		return []Tag{Amendment}
	}

	var hits []Tag
	for _, r := range rules {
		if r.re.MatchString(text) {
			hits = append(hits, r.tag)
		}
	}
	if len(hits) == 0 {
		return []Tag{DefaultTag}
	}
	return hits
}

// ClassifyTitle applies the smaller title-scoped subset: Amendment,
// Repeal+Revocation, Enactment+Citation+Commencement, Application+Scope,
// Transitional Arrangement, Extent. Returns an empty slice (never the
// default tag) if nothing matches, since a title carries far less context
// than full section text.
func ClassifyTitle(title string) []Tag {
	if title == "" {
		return nil
	}
	if isAmendment(title) {
		return []Tag{Amendment}
	}

	var hits []Tag
	for _, r := range rules {
		if !r.titleScoped {
			continue
		}
		if r.re.MatchString(title) {
			hits = append(hits, r.tag)
		}
	}
	return hits
}

var sortPriority = map[Tag]int{
	EnactmentCitationCommencement: 0,
	InterpretationDefinition:      1,
	ApplicationScope:              2,
	Extent:                        3,

	Exemption:                      4,
	ChargeFee:                      5,
	Offence:                        6,
	EnforcementProsecution:         7,
	DefenceAppeal:                  8,
	PowerConferred:                 9,
	ProcessRuleConstraintCondition: 10,
	Commencement:                   11,
	TransitionalArrangement:        12,

	RepealRevocation: 13,
	Amendment:        14,
}

// Sort orders tags structural-first and amendatory-last, filters unknown
// tags out, and is stable among ties. Idempotent.
func Sort(tags []Tag) []Tag {
	kept := make([]Tag, 0, len(tags))
	seen := map[Tag]bool{}
	for _, t := range tags {
		if _, ok := sortPriority[t]; !ok || seen[t] {
			continue
		}
		seen[t] = true
		kept = append(kept, t)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return sortPriority[kept[i]] < sortPriority[kept[j]]
	})
	return kept
}
