package popimar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_EmptyText(t *testing.T) {
	require.Nil(t, Classify("", []string{"Duty"}))
}

func TestClassify_DefaultsToRiskControl(t *testing.T) {
	// Plain duty text with no category-specific cue should default to
	// Risk Control since "Duty" is POPIMAR-eligible.
	got := Classify("The employer shall ensure the health and safety of employees.", []string{"Duty"})
	require.Contains(t, got, RiskControl)
}

func TestClassify_NoDefaultForIneligibleDutyType(t *testing.T) {
	got := Classify("Some section with no category cues at all here.", []string{"Amendment"})
	require.NotContains(t, got, RiskControl)
}

func TestClassify_OrganisationCategory(t *testing.T) {
	got := Classify("Arrangements shall be made for the planning, organisation and control of preventive measures.", []string{"Duty"})
	require.Contains(t, got, Organisation)
}

func TestClassify_CategoryFires(t *testing.T) {
	got := Classify("The employer must maintain records of all inspections.", []string{"Duty"})
	require.Contains(t, got, Records)
}

func TestSort_FiltersUnknownAndDedups(t *testing.T) {
	got := Sort([]Tag{RiskControl, Tag("bogus"), RiskControl, Records})
	require.Equal(t, []Tag{RiskControl, Records}, got)
}

func TestSort_Idempotent(t *testing.T) {
	first := Sort([]Tag{Review, Policy, Review})
	second := Sort(first)
	require.Equal(t, first, second)
}
