package dutytype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSort_PriorityOrder(t *testing.T) {
	got := Sort([]string{"Power", "Duty", "Responsibility", "Right"})
	require.Equal(t, []string{"Duty", "Right", "Responsibility", "Power"}, got)
}

func TestSort_FiltersUnknown(t *testing.T) {
	got := Sort([]string{"Duty", "Nonsense", "Power"})
	require.Equal(t, []string{"Duty", "Power"}, got)
}

func TestSort_Idempotent(t *testing.T) {
	first := Sort([]string{"Power", "Duty"})
	second := Sort(first)
	require.Equal(t, first, second)
}

func TestDedup_PreservesOrder(t *testing.T) {
	got := Dedup([]string{"Duty", "Right", "Duty", "Power", "Right"})
	require.Equal(t, []string{"Duty", "Right", "Power"}, got)
}
