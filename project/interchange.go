package project

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// document is the interchange layout: form and theme keys at the top level
// next to the block list.
type document struct {
	Form
	Theme
	ContentBlocks    []wireBlock `json:"contentBlocks"`
	EnableCodeGemini bool        `json:"enableCodeGemini"`
}

type wireBlock struct {
	ID           blockID `json:"id"`
	Type         Kind    `json:"type"`
	Content      *string `json:"content,omitempty"`
	SourceType   Source  `json:"sourceType,omitempty"`
	URL          *string `json:"url,omitempty"`
	Alt          *string `json:"alt,omitempty"`
	Caption      *string `json:"caption,omitempty"`
	UploadedFile *string `json:"uploadedFile,omitempty"`
	Language     *string `json:"language,omitempty"`
	Code         *string `json:"code,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// blockID accepts both string ids and the numeric ids older documents carry.
type blockID string

func (id *blockID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
	case len(b) > 0 && b[0] == '"':
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*id = blockID(s)
	default:
		*id = blockID(b)
	}
	return nil
}

// Export serializes s as an interchange document. Uploaded files are reduced
// to their filename and object references are dropped.
func Export(s State) ([]byte, error) {
	doc := document{
		Form:             s.Form,
		Theme:            s.Theme,
		ContentBlocks:    make([]wireBlock, 0, len(s.Blocks)),
		EnableCodeGemini: s.AutoFillCode,
	}
	for _, b := range s.Blocks {
		doc.ContentBlocks = append(doc.ContentBlocks, toWire(b))
	}
	out, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode project data: %w", err)
	}
	return out, nil
}

func toWire(b Block) wireBlock {
	w := wireBlock{ID: blockID(b.BlockID()), Type: b.Kind()}
	switch b := b.(type) {
	case *TextBlock:
		w.Content = ptr(b.Content)
	case *ImageBlock:
		w.SourceType = b.Source
		w.URL, w.UploadedFile = wireMedia(&b.Media)
		w.Alt = ptr(b.Alt)
		w.Caption = ptr(b.Caption)
	case *VideoBlock:
		w.SourceType = b.Source
		w.URL, w.UploadedFile = wireMedia(&b.Media)
		w.Caption = ptr(b.Caption)
	case *CodeBlock:
		w.Language = ptr(b.Language)
		w.Code = ptr(b.Code)
		w.Description = ptr(b.Description)
	}
	return w
}

func wireMedia(m *Media) (url, file *string) {
	if m.Source != SourceUpload {
		return ptr(m.URL), nil
	}
	if m.FileName != "" {
		file = ptr(m.FileName)
	}
	return ptr(""), file
}

// Import parses an interchange document. Missing keys take their first-load
// defaults; upload blocks come back without a file. On any error nothing is
// returned, so a caller never applies half a document.
func Import(data []byte) (State, error) {
	doc := document{Form: DefaultForm(), Theme: DefaultTheme()}
	if err := sonic.ConfigStd.Unmarshal(data, &doc); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInterchange, err)
	}
	s := State{Form: doc.Form, Theme: doc.Theme, AutoFillCode: doc.EnableCodeGemini}
	seen := make(map[string]bool, len(doc.ContentBlocks))
	for i, w := range doc.ContentBlocks {
		id := string(w.ID)
		if id == "" || seen[id] {
			id = uuid.NewString()
		}
		seen[id] = true
		b, err := fromWire(w, id)
		if err != nil {
			return State{}, fmt.Errorf("%w: block %d: %v", ErrInterchange, i, err)
		}
		s.Blocks = append(s.Blocks, b)
	}
	return s, nil
}

func fromWire(w wireBlock, id string) (Block, error) {
	b, err := NewBlock(w.Type, id)
	if err != nil {
		return nil, fmt.Errorf("%w %q", err, w.Type)
	}
	switch b := b.(type) {
	case *TextBlock:
		b.Content = val(w.Content)
	case *ImageBlock:
		if err := mediaFromWire(&b.Media, KindImage, w); err != nil {
			return nil, err
		}
		b.Alt = val(w.Alt)
		b.Caption = val(w.Caption)
	case *VideoBlock:
		if err := mediaFromWire(&b.Media, KindVideo, w); err != nil {
			return nil, err
		}
		b.Caption = val(w.Caption)
	case *CodeBlock:
		b.Language = val(w.Language)
		b.Code = val(w.Code)
		b.Description = val(w.Description)
	}
	return b, nil
}

func mediaFromWire(m *Media, k Kind, w wireBlock) error {
	if w.SourceType != "" {
		if !ValidSource(k, w.SourceType) {
			return fmt.Errorf("%w: %q", ErrInvalidSource, w.SourceType)
		}
		m.Source = w.SourceType
	}
	if m.Source == SourceUpload {
		m.FileName = val(w.UploadedFile)
		return nil
	}
	m.URL = val(w.URL)
	return nil
}

func ptr(s string) *string { return &s }

func val(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
