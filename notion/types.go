package notion

import (
	"encoding/json"
	"strings"
	"time"
)

// RichText is one inline text run inside a block or page property.
type RichText struct {
	Type      string `json:"type"`
	PlainText string `json:"plain_text"`
}

// Page is a read-only summary of one remote document, as returned by the
// search endpoint. It is owned by the source system, not by this module.
type Page struct {
	ID             string
	CreatedTime    time.Time
	LastEditedTime time.Time
	URL            string
	ParentID       string
	Title          string
}

// pageEnvelope mirrors the wire shape of a page object.
type pageEnvelope struct {
	ID             string    `json:"id"`
	CreatedTime    time.Time `json:"created_time"`
	LastEditedTime time.Time `json:"last_edited_time"`
	URL            string    `json:"url"`
	Parent         struct {
		Type       string `json:"type"`
		PageID     string `json:"page_id"`
		DatabaseID string `json:"database_id"`
	} `json:"parent"`
	Properties map[string]struct {
		Type  string     `json:"type"`
		Title []RichText `json:"title"`
	} `json:"properties"`
}

// UnmarshalJSON decodes a page object, flattening the title property and
// parent reference out of their wire envelopes.
func (p *Page) UnmarshalJSON(data []byte) error {
	var env pageEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	p.ID = env.ID
	p.CreatedTime = env.CreatedTime
	p.LastEditedTime = env.LastEditedTime
	p.URL = env.URL

	switch env.Parent.Type {
	case "page_id":
		p.ParentID = env.Parent.PageID
	case "database_id":
		p.ParentID = env.Parent.DatabaseID
	}

	// The title lives in whichever property carries type "title".
	for _, prop := range env.Properties {
		if prop.Type != "title" {
			continue
		}
		var sb strings.Builder
		for _, run := range prop.Title {
			sb.WriteString(run.PlainText)
		}
		p.Title = sb.String()
		break
	}

	return nil
}

// Block is a single structural or textual unit within a remote page.
// Blocks form a tree; PageBlocks flattens it into depth-first document
// order, recording each block's nesting depth.
type Block struct {
	ID          string
	Type        string
	HasChildren bool
	Text        []RichText
	Checked     bool   // to_do blocks only
	Language    string // code blocks only
	Depth       int    // nesting depth, 0 for top-level blocks
}

// blockEnvelope mirrors the wire shape of a block object. The typed
// payload lives under a key named after the block type and is decoded
// in a second pass over the raw message.
type blockEnvelope struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	HasChildren bool   `json:"has_children"`
}

type blockPayload struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
	Language string     `json:"language"`
}

// UnmarshalJSON decodes a block object, pulling the rich text runs out of
// the type-keyed payload. Unknown block types decode to a Block with no
// text runs; the extractor skips them silently.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	b.ID = env.ID
	b.Type = env.Type
	b.HasChildren = env.HasChildren

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	payloadRaw, ok := raw[env.Type]
	if !ok {
		return nil
	}

	var payload blockPayload
	if err := json.Unmarshal(payloadRaw, &payload); err != nil {
		// Malformed payloads degrade to a text-free block rather than
		// failing the whole listing.
		return nil
	}

	b.Text = payload.RichText
	b.Checked = payload.Checked
	b.Language = payload.Language
	return nil
}

// PlainText concatenates the block's inline text runs.
func (b *Block) PlainText() string {
	if len(b.Text) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, run := range b.Text {
		sb.WriteString(run.PlainText)
	}
	return sb.String()
}

// listResponse is the cursor-paginated envelope shared by the search and
// block-children endpoints.
type listResponse[T any] struct {
	Results    []T    `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// apiErrorBody is the error payload the API returns on non-2xx status.
type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// searchRequest is the body of the page-listing search call.
type searchRequest struct {
	Filter      searchFilter `json:"filter"`
	StartCursor string       `json:"start_cursor,omitempty"`
	PageSize    int          `json:"page_size"`
}

type searchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}
