// Package popimar maps section text to zero or more of the 16 HSG65
// operational safety-management categories.
package popimar

import "regexp"

// Tag is one of the 16 closed POPIMAR categories.
type Tag string

const (
	Policy                  Tag = "Policy"
	Organisation            Tag = "Organisation"
	OrganisationControl     Tag = "Organisation - Control"
	OrganisationCommsConsul Tag = "Organisation - Communication & Consultation"
	OrganisationCollab      Tag = "Organisation - Collaboration, Coordination, Cooperation"
	OrganisationCompetence  Tag = "Organisation - Competence"
	OrganisationCosts       Tag = "Organisation - Costs"
	Records                 Tag = "Records"
	PermitAuth              Tag = "Permit, Authorisation, License"
	AspectsHazards          Tag = "Aspects and Hazards"
	PlanningRisk            Tag = "Planning & Risk / Impact Assessment"
	RiskControl             Tag = "Risk Control"
	Notification            Tag = "Notification"
	Maintenance             Tag = "Maintenance, Examination and Testing"
	Checking                Tag = "Checking, Monitoring"
	Review                  Tag = "Review"
)

// EligibleDutyTypes is the default closed set of duty_type tags that
// trigger the Risk Control fallback when no category pattern matches.
// Exposed as a var so taxaconfig can override it.
var EligibleDutyTypes = map[string]bool{
	"Duty":                             true,
	"Right":                            true,
	"Responsibility":                   true,
	"Power":                            true,
	"Process, Rule, Constraint, Condition": true,
}

type rule struct {
	tag     Tag
	pattern string
	re      *regexp.Regexp
}

// rules lists category patterns in priority order; order matters only for
// readability here since every matching category is accumulated, unlike
// purpose.Classify's Amendment short-circuit.
var rules = []*rule{
	{tag: Policy, pattern: `(?i)\b(policy|policies)\b.*\b(statement|objective)s?\b`},
	{tag: Organisation, pattern: `(?i)\borganisation(s|al)?\b`},
	{tag: OrganisationControl, pattern: `(?i)\bcontrol\b.*\b(arrangements?|structure)\b`},
	{tag: OrganisationCommsConsul, pattern: `(?i)\b(consult(ation|ing)?|communicat(e|ion))\b`},
	{tag: OrganisationCollab, pattern: `(?i)\b(cooperat(e|ion)|coordinat(e|ion)|collaborat(e|ion))\b`},
	{tag: OrganisationCompetence, pattern: `(?i)\b(compet(ent|ence)|train(ing|ed)|qualifi(ed|cation))\b`},
	{tag: OrganisationCosts, pattern: `(?i)\b(cost|fee|charge|expense)s?\b`},
	{tag: Records, pattern: `(?i)\b(records?|registers?|logs?)\b`},
	{tag: PermitAuth, pattern: `(?i)\b(permit|licen[cs]e|authoris(e|ation))\b`},
	{tag: AspectsHazards, pattern: `(?i)\b(hazard|aspect)s?\b`},
	{tag: PlanningRisk, pattern: `(?i)\b(risk|impact)\b.*\b(assessment|plan(ning)?)\b`},
	{tag: Notification, pattern: `(?i)\b(notif(y|ication)|give notice|inform(s|ed)?)\b`},
	{tag: Maintenance, pattern: `(?i)\b(maintain|maintenance|examin(e|ation)|test(ing)?)\b`},
	{tag: Checking, pattern: `(?i)\b(check(ing)?|monitor(ing)?|inspect(ion)?)\b`},
	{tag: Review, pattern: `(?i)\breview(ed|ing)?\b`},
}

func init() {
	for _, r := range rules {
		r.re = regexp.MustCompile(r.pattern)
	}
}

// Classify returns every category tag whose pattern fires in text, plus the
// Risk Control default when dutyTypes contains an eligible tag and nothing
// else matched. Empty text returns nil.
func Classify(text string, dutyTypes []string) []Tag {
	if text == "" {
		return nil
	}

	var hits []Tag
	for _, r := range rules {
		if r.re.MatchString(text) {
			hits = append(hits, r.tag)
		}
	}

	if len(hits) == 0 && eligible(dutyTypes) {
		hits = append(hits, RiskControl)
	}
	return hits
}

func eligible(dutyTypes []string) bool {
	for _, dt := range dutyTypes {
		if EligibleDutyTypes[dt] {
			return true
		}
	}
	return false
}

// Sort filters unknown tags and removes duplicates, preserving first-seen
// order. There is no cross-category priority beyond pattern-fire order, so
// Sort is dedup-only. Idempotent.
func Sort(tags []Tag) []Tag {
	known := map[Tag]bool{
		Policy: true, Organisation: true, OrganisationControl: true,
		OrganisationCommsConsul: true, OrganisationCollab: true,
		OrganisationCompetence: true, OrganisationCosts: true, Records: true,
		PermitAuth: true, AspectsHazards: true, PlanningRisk: true,
		RiskControl: true, Notification: true, Maintenance: true,
		Checking: true, Review: true,
	}
	seen := map[Tag]bool{}
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if !known[t] || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
