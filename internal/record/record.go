// Package record normalizes pipeline input/output at the process boundary.
//
// Callers (scrapers, parse-stage orchestrators) hand the core loosely typed
// maps whose keys may arrive symbolic or string-quoted. Record is the one
// concrete struct the rest of the engine works against; Extra carries any
// caller field the UI expects but the core does not interpret.
package record

import "encoding/json"

// ActorLabel is a colon-delimited hierarchical actor identifier, e.g.
// "Org: Employer" or "Gvt: Authority: Planning". Case-sensitive.
type ActorLabel = string

// Record is one statutory section plus the enrichments the pipeline adds.
type Record struct {
	Text    string       `json:"text"`
	Role    []ActorLabel `json:"role,omitempty"`
	RoleGvt []ActorLabel `json:"role_gvt,omitempty"`

	// Enrichments added in-place by the pipeline.
	DutyType             []string     `json:"duty_type,omitempty"`
	DutyHolder           []ActorLabel `json:"duty_holder,omitempty"`
	RightsHolder         []ActorLabel `json:"rights_holder,omitempty"`
	ResponsibilityHolder []ActorLabel `json:"responsibility_holder,omitempty"`
	PowerHolder          []ActorLabel `json:"power_holder,omitempty"`
	Popimar              []string     `json:"popimar,omitempty"`
	Purpose              []string     `json:"purpose,omitempty"`

	// MakingDetector inputs — metadata only, no section text required.
	// MdBodyParas/MdScheduleParas are pointers so a field the caller never
	// measured (absent from the input JSON, nil here) stays distinguishable
	// from one the caller explicitly counted as zero (making.Metadata reads
	// the same distinction the same way).
	TitleEn         string `json:"title_en,omitempty"`
	MdDescription   string `json:"md_description,omitempty"`
	MdBodyParas     *int   `json:"md_body_paras,omitempty"`
	MdScheduleParas *int   `json:"md_schedule_paras,omitempty"`

	// Extra holds any field the caller sent that the core does not know
	// about. It passes through untouched so downstream consumers (UI,
	// persistence) never lose data the core doesn't need.
	Extra map[string]json.RawMessage `json:"-"`
}

// rawRecord mirrors Record's known fields for JSON (de)serialization while
// collecting unrecognized keys into Extra.
type rawRecord Record

// FromJSON decodes a single JSON object into a Record, preserving unknown
// keys in Extra. Both bare-list and legacy wrapper shapes for holder fields
// are handled by jsonb.HolderList elsewhere; FromJSON itself only concerns
// itself with top-level key normalization.
func FromJSON(data []byte) (Record, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, err
	}

	var known map[string]json.RawMessage
	if err := json.Unmarshal(data, &known); err != nil {
		return Record{}, err
	}

	rec := Record(raw)
	rec.Extra = map[string]json.RawMessage{}
	for _, k := range knownKeys {
		delete(known, k)
	}
	for k, v := range known {
		rec.Extra[k] = v
	}
	return rec, nil
}

var knownKeys = []string{
	"text", "role", "role_gvt",
	"duty_type", "duty_holder", "rights_holder", "responsibility_holder", "power_holder",
	"popimar", "purpose",
	"title_en", "md_description", "md_body_paras", "md_schedule_paras",
}

// ToJSON encodes the Record back to a single JSON object, merging Extra
// fields alongside the known fields. Holder fields always serialize as bare
// arrays, never the legacy {"items": [...]} wrapper.
func ToJSON(rec Record) ([]byte, error) {
	out := map[string]json.RawMessage{}

	known, err := json.Marshal(rawRecord(rec))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(known, &out); err != nil {
		return nil, err
	}

	for k, v := range rec.Extra {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}

	return json.Marshal(out)
}

// Clone returns a deep-enough copy of rec for concurrent batch processing:
// slices are re-sliced (not aliased) so a worker mutating its own copy's
// enrichment fields cannot race with another worker's copy.
func Clone(rec Record) Record {
	out := rec
	out.Role = append([]ActorLabel(nil), rec.Role...)
	out.RoleGvt = append([]ActorLabel(nil), rec.RoleGvt...)
	out.DutyType = append([]string(nil), rec.DutyType...)
	out.DutyHolder = append([]ActorLabel(nil), rec.DutyHolder...)
	out.RightsHolder = append([]ActorLabel(nil), rec.RightsHolder...)
	out.ResponsibilityHolder = append([]ActorLabel(nil), rec.ResponsibilityHolder...)
	out.PowerHolder = append([]ActorLabel(nil), rec.PowerHolder...)
	out.Popimar = append([]string(nil), rec.Popimar...)
	out.Purpose = append([]string(nil), rec.Purpose...)
	if rec.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(rec.Extra))
		for k, v := range rec.Extra {
			out.Extra[k] = v
		}
	}
	return out
}
