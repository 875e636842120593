// Package jsonb serializes RoleMatcher output into the sidecar JSONB
// document shape persistence expects, and supplies the custom list codec
// that accepts both the canonical bare-array shape and a legacy
// {"items": [...]} wrapper on read.
package jsonb

import "encoding/json"

// HolderList is a []string that marshals as a bare JSON array (the
// canonical shape) but unmarshals either a bare array or a
// {"items": [...]} object, so older persisted documents stay readable.
type HolderList []string

// MarshalJSON always emits the bare-array form.
func (h HolderList) MarshalJSON() ([]byte, error) {
	if h == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(h))
}

// UnmarshalJSON accepts a bare array or a {"items": [...]} wrapper.
func (h *HolderList) UnmarshalJSON(data []byte) error {
	var bare []string
	if err := json.Unmarshal(data, &bare); err == nil {
		*h = bare
		return nil
	}

	var wrapped struct {
		Items []string `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*h = wrapped.Items
	return nil
}

// Entry is one holder-bearing match, as persisted in a sidecar document's
// "entries" array.
type Entry struct {
	Holder   string `json:"holder"`
	DutyType string `json:"duty_type"`
	Clause   string `json:"clause"`
	Article  string `json:"article,omitempty"`
}

// Document is the sidecar JSONB shape for one holder role: an entry per
// match, the deduplicated holder list, and the article context list (empty
// unless the caller threaded an article through).
type Document struct {
	Entries  []Entry    `json:"entries"`
	Holders  HolderList `json:"holders"`
	Articles []string   `json:"articles"`
}

// BuildDocument assembles a Document from a flat Entry list, deduplicating
// Holders while preserving first-seen order. Articles is populated only
// from entries that carry a non-empty Article, also deduplicated.
func BuildDocument(entries []Entry) Document {
	doc := Document{Entries: entries, Holders: HolderList{}, Articles: []string{}}

	seenHolder := map[string]bool{}
	seenArticle := map[string]bool{}
	for _, e := range entries {
		if e.Holder != "" && !seenHolder[e.Holder] {
			seenHolder[e.Holder] = true
			doc.Holders = append(doc.Holders, e.Holder)
		}
		if e.Article != "" && !seenArticle[e.Article] {
			seenArticle[e.Article] = true
			doc.Articles = append(doc.Articles, e.Article)
		}
	}
	return doc
}

// Marshal serializes a Document to its canonical JSON form.
func Marshal(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}

// Unmarshal parses a sidecar document, accepting either holder-list shape
// via HolderList's custom codec.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}
