// Package taxatest holds shared end-to-end scenario fixtures used across
// package test suites, so each scenario is defined once and checked from
// multiple angles (pipeline, rolematch, clause) without drifting.
package taxatest

// Scenario is one concrete end-to-end input/expectation pair.
type Scenario struct {
	Name    string
	Text    string
	Role    []string
	RoleGvt []string
}

var (
	EmployerDuty = Scenario{
		Name: "employer duty",
		Text: "The employer shall ensure the health and safety of employees.",
		Role: []string{"Org: Employer", "Ind: Employee"},
	}
	MinisterialPower = Scenario{
		Name:    "ministerial power",
		Text:    "The Secretary of State may by regulations prescribe requirements.",
		RoleGvt: []string{"Gvt: Minister"},
	}
	ClauseHygiene = Scenario{
		Name: "clause hygiene",
		Text: `The planning authority must give notice of the appeal to each person on whom the hazardous substances contravention notice wa`,
	}
	AmendmentSuppression = Scenario{
		Name: "amendment suppression",
		Text: "The following amendments are made to the Health and Safety Act 1974.",
		Role: []string{"Org: Employer"},
	}
)
