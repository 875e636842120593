package modal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndex_PriorityOrdering(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Kind
	}{
		{"may not beats may", "Employees may not enter the site.", MayNot},
		{"may only beats may", "Inspectors may only act with notice.", MayOnly},
		{"shall", "The employer shall comply.", Shall},
		{"must", "The contractor must notify.", Must},
		{"plain may", "The minister may act.", May},
		{"duty of", "It shall be the duty of the employer to comply.", DutyOf},
		{"has power to", "The authority has the power to inspect.", HasPowerTo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchors := Index(tt.text)
			require.NotEmpty(t, anchors)
			require.Equal(t, tt.want, anchors[0].Kind)
		})
	}
}

func TestIndex_Empty(t *testing.T) {
	require.Nil(t, Index(""))
	require.Nil(t, Index("no modal verbs here at all"))
}

func TestIndex_MultipleAnchorsInOrder(t *testing.T) {
	text := "The employer shall comply and the inspector must verify."
	anchors := Index(text)
	require.Len(t, anchors, 2)
	require.Less(t, anchors[0].Offset, anchors[1].Offset)
}
