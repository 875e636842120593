package jsonb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHolderList_MarshalsAsBareArray(t *testing.T) {
	h := HolderList{"Org: Employer", "Ind: Employee"}
	data, err := json.Marshal(h)
	require.NoError(t, err)
	require.JSONEq(t, `["Org: Employer","Ind: Employee"]`, string(data))
}

func TestHolderList_UnmarshalsBareArray(t *testing.T) {
	var h HolderList
	require.NoError(t, json.Unmarshal([]byte(`["Org: Employer"]`), &h))
	require.Equal(t, HolderList{"Org: Employer"}, h)
}

func TestHolderList_UnmarshalsLegacyWrapper(t *testing.T) {
	var h HolderList
	require.NoError(t, json.Unmarshal([]byte(`{"items":["Org: Employer"]}`), &h))
	require.Equal(t, HolderList{"Org: Employer"}, h)
}

func TestBuildDocument_DedupsHoldersAndArticles(t *testing.T) {
	entries := []Entry{
		{Holder: "Org: Employer", DutyType: "Duty", Clause: "a", Article: "1"},
		{Holder: "Org: Employer", DutyType: "Duty", Clause: "b", Article: "1"},
		{Holder: "Ind: Employee", DutyType: "Right", Clause: "c"},
	}
	doc := BuildDocument(entries)

	require.Equal(t, HolderList{"Org: Employer", "Ind: Employee"}, doc.Holders)
	require.Equal(t, []string{"1"}, doc.Articles)
	require.Len(t, doc.Entries, 3)
}

func TestRoundTrip(t *testing.T) {
	// Build -> marshal -> parse -> rebuild gives an entry list equal to the
	// input, up to article-context defaulting.
	doc := BuildDocument([]Entry{
		{Holder: "Org: Employer", DutyType: "Duty", Clause: "must comply."},
	})

	data, err := Marshal(doc)
	require.NoError(t, err)

	parsed, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, doc.Entries, parsed.Entries)
	require.Equal(t, doc.Holders, parsed.Holders)
}
