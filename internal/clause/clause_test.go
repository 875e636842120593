package clause

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shotleylegal/taxaengine/internal/rolekind"
	"github.com/shotleylegal/taxaengine/internal/taxatest"
)

func TestRefine_EmptyInputs(t *testing.T) {
	require.Equal(t, "", Refine("", rolekind.Duty))
	require.Equal(t, "", Refine("no modal verb here", rolekind.Duty))
}

func TestRefine_PreservesSkeleton(t *testing.T) {
	raw := "The employer shall ensure the health and safety of employees."
	got := Refine(raw, rolekind.Duty)
	require.NotEmpty(t, got)
	require.Contains(t, got, "shall")
}

func TestExtractSubject_StripsLeadingArticle(t *testing.T) {
	got := extractSubject("The employer shall comply", 13, 120)
	require.Equal(t, "employer", got)
}

func TestRefine_NeverEndsMidWord(t *testing.T) {
	// A raw capture truncated mid-word ("...notice wa") must never surface
	// the dangling fragment, with or without an ellipsis after it.
	raw := taxatest.ClauseHygiene.Text
	got := Refine(raw, rolekind.Responsibility)

	require.False(t, strings.Contains(got, "wa..."), "dangling fragment survived in %q", got)
	require.True(t, strings.HasSuffix(got, "notice..."), "clause %q should end on the last whole word plus an ellipsis", got)
}

func TestRefine_RespectsMaxLen(t *testing.T) {
	raw := "The employer shall " + strings.Repeat("ensure compliance with every applicable requirement ", 20) + "."
	got := Refine(raw, rolekind.Duty)
	require.LessOrEqual(t, len(got), 350)
}

func TestEnforceWordBoundary_WhitelistedShortWord(t *testing.T) {
	got := enforceWordBoundary("The employer shall comply with the")
	require.True(t, strings.HasSuffix(got, "the") || strings.HasSuffix(got, "..."))
}

func TestEnforceWordBoundary_StripsNonWhitelistedFragment(t *testing.T) {
	got := enforceWordBoundary("The employer shall notify the wa")
	require.True(t, strings.HasSuffix(got, "..."))
	require.False(t, strings.HasSuffix(got, "wa"))
}

func TestTruncateSmart_ShortPassesThrough(t *testing.T) {
	require.Equal(t, "short.", truncateSmart("short.", 300))
}

func TestTruncateSmart_CutsAtSentenceBoundary(t *testing.T) {
	clause := "First sentence ends here. Second sentence runs on and on and on."
	got := truncateSmart(clause, 30)
	require.True(t, strings.HasSuffix(got, "."))
	require.LessOrEqual(t, len(got), 30)
}
