package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    DocumentKind
		wantErr bool
	}{
		{name: "object", input: `{"a": 1}`, kind: DocumentStructured},
		{name: "array", input: `[{"op": "add"}]`, kind: DocumentStructured},
		{name: "string", input: `"{\"a\": 1}"`, kind: DocumentText},
		{name: "null", input: `null`, kind: DocumentAbsent},
		{name: "number", input: `42`, wantErr: true},
		{name: "boolean", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc Document
			err := json.Unmarshal([]byte(tt.input), &doc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, doc.Kind())
		})
	}
}

func TestDocumentMissingField(t *testing.T) {
	var args CreateResourceArgs
	require.NoError(t, json.Unmarshal([]byte(`{"type_name": "AWS::S3::Bucket"}`), &args))

	assert.False(t, args.DesiredState.IsSet())

	_, err := args.DesiredState.ObjectJSON()
	assert.ErrorIs(t, err, ErrDocumentAbsent)
}

func TestDocumentObjectJSON(t *testing.T) {
	t.Run("structured object is compacted", func(t *testing.T) {
		var doc Document
		require.NoError(t, json.Unmarshal([]byte("{\n  \"BucketName\": \"logs\",\n  \"Tags\": []\n}"), &doc))

		text, err := doc.ObjectJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"BucketName":"logs","Tags":[]}`, text)
	})

	t.Run("text is forwarded verbatim", func(t *testing.T) {
		raw := `{ "BucketName" : "logs" }`

		text, err := TextDocument(raw).ObjectJSON()
		require.NoError(t, err)
		assert.Equal(t, raw, text)
	})

	t.Run("invalid text is rejected", func(t *testing.T) {
		_, err := TextDocument(`{"BucketName":`).ObjectJSON()
		assert.EqualError(t, err, "document string is not valid JSON")
	})

	t.Run("scalars in text are rejected", func(t *testing.T) {
		_, err := TextDocument(`"just a string"`).ObjectJSON()
		assert.EqualError(t, err, "document must be a JSON object")
	})

	t.Run("arrays are not objects", func(t *testing.T) {
		_, err := mustObjectDocument([]string{"a"}).ObjectJSON()
		assert.EqualError(t, err, "document must be a JSON object")
	})
}

func TestDocumentArrayJSON(t *testing.T) {
	text, err := TextDocument(`[{"op":"remove","path":"/Tags"}]`).ArrayJSON()
	require.NoError(t, err)
	assert.Equal(t, `[{"op":"remove","path":"/Tags"}]`, text)

	_, err = mustObjectDocument(map[string]any{"op": "remove"}).ArrayJSON()
	assert.EqualError(t, err, "document must be a JSON array")
}

func TestDocumentMarshalRoundTrip(t *testing.T) {
	doc := mustObjectDocument(map[string]any{"Name": "x"})

	encoded, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Name":"x"}`, string(encoded))

	encoded, err = json.Marshal(TextDocument(`{"Name":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, `"{\"Name\":\"x\"}"`, string(encoded))

	encoded, err = json.Marshal(Document{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(encoded))
}

func TestDocumentIsEmptyObject(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{ }`), &doc))
	assert.True(t, doc.IsEmptyObject())

	assert.False(t, mustObjectDocument(map[string]any{"a": 1}).IsEmptyObject())
	assert.False(t, TextDocument("{}").IsEmptyObject())
	assert.False(t, Document{}.IsEmptyObject())
}
