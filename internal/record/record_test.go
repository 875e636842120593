package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromJSON_PreservesUnknownKeys(t *testing.T) {
	data := []byte(`{"text":"hello","role":["Org: Employer"],"article_id":"A1","ui_label":"Section 3"}`)

	rec, err := FromJSON(data)
	require.NoError(t, err)
	require.Equal(t, "hello", rec.Text)
	require.Equal(t, []ActorLabel{"Org: Employer"}, rec.Role)
	require.Contains(t, rec.Extra, "article_id")
	require.Contains(t, rec.Extra, "ui_label")
}

func TestToJSON_RoundTripsExtraFields(t *testing.T) {
	rec, err := FromJSON([]byte(`{"text":"hi","custom_field":42}`))
	require.NoError(t, err)

	out, err := ToJSON(rec)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Contains(t, decoded, "custom_field")
	require.Contains(t, decoded, "text")
}

func TestToJSON_KnownFieldsWinOverExtra(t *testing.T) {
	rec := Record{Text: "known value", Extra: map[string]json.RawMessage{"text": json.RawMessage(`"stale"`)}}

	out, err := ToJSON(rec)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.JSONEq(t, `"known value"`, string(decoded["text"]))
}

func TestClone_DeepCopiesSlicesAndExtra(t *testing.T) {
	rec := Record{
		Role:  []ActorLabel{"Org: Employer"},
		Extra: map[string]json.RawMessage{"k": json.RawMessage(`1`)},
	}
	cloned := Clone(rec)
	cloned.Role[0] = "mutated"
	cloned.Extra["k"] = json.RawMessage(`2`)

	require.Equal(t, ActorLabel("Org: Employer"), rec.Role[0])
	require.JSONEq(t, "1", string(rec.Extra["k"]))
}
