package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type DocumentKind uint8

const (
	DocumentAbsent DocumentKind = iota
	DocumentStructured
	DocumentText
)

var ErrDocumentAbsent = errors.New("document is empty")

// Document is a tool parameter that hosts may send either as structured
// JSON or as a string holding JSON text. Either form is resolved to JSON
// text before it is sent to AWS.
type Document struct {
	kind  DocumentKind
	value json.RawMessage
	text  string
}

// NewObjectDocument builds a structured document from a Go value.
func NewObjectDocument(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc Document
	if err := doc.UnmarshalJSON(data); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// TextDocument wraps JSON text supplied as a string.
func TextDocument(text string) Document {
	return Document{kind: DocumentText, text: text}
}

func (d Document) Kind() DocumentKind {
	return d.kind
}

func (d Document) IsSet() bool {
	return d.kind != DocumentAbsent
}

// IsEmptyObject reports whether the document is the structured object {}.
// Text documents are never considered empty.
func (d Document) IsEmptyObject() bool {
	return d.kind == DocumentStructured && bytes.Equal(d.value, []byte("{}"))
}

func (d *Document) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*d = Document{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("invalid document string: %w", err)
		}
		*d = TextDocument(text)
	case '{', '[':
		var compacted bytes.Buffer
		if err := json.Compact(&compacted, trimmed); err != nil {
			return fmt.Errorf("invalid document: %w", err)
		}
		*d = Document{kind: DocumentStructured, value: compacted.Bytes()}
	default:
		return fmt.Errorf("expected a JSON object or a string containing JSON, got %s", trimmed)
	}
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	switch d.kind {
	case DocumentStructured:
		return d.value, nil
	case DocumentText:
		return json.Marshal(d.text)
	}
	return []byte("null"), nil
}

// ObjectJSON resolves the document to JSON text that must encode an object.
func (d Document) ObjectJSON() (string, error) {
	return d.resolve('{', "object")
}

// ArrayJSON resolves the document to JSON text that must encode an array.
func (d Document) ArrayJSON() (string, error) {
	return d.resolve('[', "array")
}

func (d Document) resolve(open byte, want string) (string, error) {
	var data []byte

	switch d.kind {
	case DocumentAbsent:
		return "", ErrDocumentAbsent
	case DocumentStructured:
		data = d.value
	case DocumentText:
		data = bytes.TrimSpace([]byte(d.text))
		if !json.Valid(data) {
			return "", fmt.Errorf("document string is not valid JSON")
		}
	}

	if len(data) == 0 || data[0] != open {
		return "", fmt.Errorf("document must be a JSON %s", want)
	}

	if d.kind == DocumentText {
		// text is forwarded exactly as the caller wrote it
		return d.text, nil
	}
	return string(data), nil
}
