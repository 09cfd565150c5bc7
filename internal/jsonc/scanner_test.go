package jsonc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastMeaningfulIndex_PlainDocument(t *testing.T) {
	doc := `{"a": 1}`
	assert.Equal(t, len(doc)-1, LastMeaningfulIndex(doc))
}

func TestLastMeaningfulIndex_TrailingWhitespace(t *testing.T) {
	doc := "{\"a\": 1}  \n\t\n"
	assert.Equal(t, byte('}'), doc[LastMeaningfulIndex(doc)])
}

func TestLastMeaningfulIndex_TrailingLineComment(t *testing.T) {
	doc := "{\"a\": 1} // nothing to see here"
	assert.Equal(t, byte('}'), doc[LastMeaningfulIndex(doc)])
}

func TestLastMeaningfulIndex_TrailingBlockComment(t *testing.T) {
	doc := "{\"a\": 1} /* multi\nline */ \n"
	assert.Equal(t, byte('}'), doc[LastMeaningfulIndex(doc)])
}

func TestLastMeaningfulIndex_CommentSyntaxInsideString(t *testing.T) {
	// The // inside the string is meaningful, not a comment.
	doc := `{"url": "https://example.com"}`
	assert.Equal(t, byte('}'), doc[LastMeaningfulIndex(doc)])

	doc = `{"a": "b // c"`
	assert.Equal(t, byte('"'), doc[LastMeaningfulIndex(doc)])
}

func TestLastMeaningfulIndex_EscapedQuote(t *testing.T) {
	doc := `{"a": "say \"hi\""} // tail`
	assert.Equal(t, byte('}'), doc[LastMeaningfulIndex(doc)])
}

func TestLastMeaningfulIndex_Empty(t *testing.T) {
	assert.Equal(t, -1, LastMeaningfulIndex(""))
	assert.Equal(t, -1, LastMeaningfulIndex(" \n\t // just a comment\n"))
}

func TestTrimTrailingComma_BareComma(t *testing.T) {
	assert.Equal(t, `"a": 1`, TrimTrailingComma(`"a": 1,`))
}

func TestTrimTrailingComma_BeforeClosingBrace(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", TrimTrailingComma("{\n  \"a\": 1,\n}"))
}

func TestTrimTrailingComma_BeforeLineCommentAndBrace(t *testing.T) {
	in := "{\n  \"a\": 1, // last entry\n}"
	want := "{\n  \"a\": 1 // last entry\n}"
	assert.Equal(t, want, TrimTrailingComma(in))
}

func TestTrimTrailingComma_InsideStringUntouched(t *testing.T) {
	in := `{"a": "x,"}`
	assert.Equal(t, in, TrimTrailingComma(in))

	in = `{"a": "x,"` // unterminated document, comma still part of the string
	assert.Equal(t, in, TrimTrailingComma(in))
}

func TestTrimTrailingComma_InsideCommentUntouched(t *testing.T) {
	in := "{\"a\": 1 /* , */}"
	assert.Equal(t, in, TrimTrailingComma(in))
}

func TestTrimTrailingComma_NothingToTrim(t *testing.T) {
	in := "{\n  \"a\": 1\n}"
	assert.Equal(t, in, TrimTrailingComma(in))
	assert.Equal(t, "", TrimTrailingComma(""))
}

func TestSniffIndent_Spaces(t *testing.T) {
	assert.Equal(t, "  ", SniffIndent("{\n  \"a\": 1\n}"))
	assert.Equal(t, "    ", SniffIndent("{\n    \"a\": 1\n}"))
}

func TestSniffIndent_Tabs(t *testing.T) {
	assert.Equal(t, "\t", SniffIndent("{\n\t\"a\": 1\n}"))
}

func TestSniffIndent_NoIndentedLine(t *testing.T) {
	assert.Equal(t, "    ", SniffIndent(`{"a": 1}`))
	assert.Equal(t, "    ", SniffIndent(""))
}

func TestSniffIndent_SkipsBlankLines(t *testing.T) {
	assert.Equal(t, "  ", SniffIndent("{\n   \n\n  \"a\": 1\n}"))
}

func TestStripComments_ParsesWithEncodingJSON(t *testing.T) {
	doc := `{
		// line comment
		"a": 1, /* block
		comment */
		"b": "keep // this",
	}`

	var tree map[string]any
	require.NoError(t, json.Unmarshal(StripComments(doc), &tree))
	assert.Equal(t, float64(1), tree["a"])
	assert.Equal(t, "keep // this", tree["b"])
}

func TestStripComments_PreservesLength(t *testing.T) {
	doc := "{\"a\": 1} // tail\n"
	assert.Len(t, StripComments(doc), len(doc))
}

func TestStripComments_TrailingCommaInArray(t *testing.T) {
	doc := `{"a": [1, 2,], "b": 3,}`
	var tree map[string]any
	require.NoError(t, json.Unmarshal(StripComments(doc), &tree))
	assert.Equal(t, []any{float64(1), float64(2)}, tree["a"])
}
