package block

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruminaider/profile-inherit/internal/jsonc"
	"github.com/ruminaider/profile-inherit/internal/settings"
)

const userDoc = `{
  // the user's own comment
  "editor.fontSize": 14,
  "one": {
    "hello": "world"
  }
}`

func TestInsert_EmptyOverlayNoOp(t *testing.T) {
	assert.Equal(t, userDoc, Insert(userDoc, settings.Overlay{}))
}

func TestInsert_AppendsBeforeClosingBrace(t *testing.T) {
	got := Insert(userDoc, settings.Overlay{"two": "default"})

	assert.True(t, strings.HasSuffix(got, "}"))
	assert.True(t, Contains(got))
	assert.Contains(t, got, `  "two": "default"`)

	// Everything the user wrote survives byte for byte.
	assert.Contains(t, got, "// the user's own comment")
	assert.True(t, strings.HasPrefix(got, userDoc[:len(userDoc)-2]))

	// The result is valid JSONC.
	var tree map[string]any
	require.NoError(t, json.Unmarshal(jsonc.StripComments(got), &tree))
	assert.Equal(t, "default", tree["two"])
	assert.Equal(t, float64(14), tree["editor.fontSize"])
}

func TestInsert_SeparatorAfterLastEntry(t *testing.T) {
	got := Insert(userDoc, settings.Overlay{"two": "default"})
	// The user's last entry ends in "}" with no comma; one must be added.
	assert.Contains(t, got, "  },\n")
}

func TestInsert_NoSeparatorAfterExistingComma(t *testing.T) {
	doc := "{\n  \"a\": 1,\n}"
	got := Insert(doc, settings.Overlay{"b": 2})
	assert.NotContains(t, got, ",,")

	var tree map[string]any
	require.NoError(t, json.Unmarshal(jsonc.StripComments(got), &tree))
	assert.Equal(t, float64(2), tree["b"])
}

func TestInsert_EmptyObject(t *testing.T) {
	got := Insert("{\n}", settings.Overlay{"a": 1})

	var tree map[string]any
	require.NoError(t, json.Unmarshal(jsonc.StripComments(got), &tree))
	assert.Equal(t, float64(1), tree["a"])
}

func TestInsert_SynthesizesDocument(t *testing.T) {
	got := Insert("", settings.Overlay{"a": 1})

	var tree map[string]any
	require.NoError(t, json.Unmarshal(jsonc.StripComments(got), &tree))
	assert.Equal(t, float64(1), tree["a"])
}

func TestInsert_SortedKeysOneLineEach(t *testing.T) {
	got := Insert("{\n}", settings.Overlay{"zeta": 1, "alpha": "x", "beta.list": []any{1, 2}})

	alphaAt := strings.Index(got, `"alpha"`)
	betaAt := strings.Index(got, `"beta.list"`)
	zetaAt := strings.Index(got, `"zeta"`)
	assert.True(t, alphaAt >= 0 && alphaAt < betaAt && betaAt < zetaAt)
	assert.Contains(t, got, `"beta.list": [1,2]`)
}

func TestInsert_RespectsTabIndentation(t *testing.T) {
	doc := "{\n\t\"a\": 1\n}"
	got := Insert(doc, settings.Overlay{"b": 2})
	assert.Contains(t, got, "\t"+StartMarker)
	assert.Contains(t, got, "\t\"b\": 2")
}

func TestRemove_NoMarkers(t *testing.T) {
	assert.Equal(t, userDoc, Remove(userDoc, zerolog.Nop()))
}

func TestRemove_SingleMarkerUntouched(t *testing.T) {
	doc := "{\n  " + StartMarker + "\n  \"a\": 1\n}"
	assert.Equal(t, doc, Remove(doc, zerolog.Nop()))

	doc = "{\n  \"a\": 1\n  " + EndMarker + "\n}"
	assert.Equal(t, doc, Remove(doc, zerolog.Nop()))
}

func TestRemove_EndBeforeStartUntouched(t *testing.T) {
	doc := "{\n  " + EndMarker + "\n  " + StartMarker + "\n}"
	assert.Equal(t, doc, Remove(doc, zerolog.Nop()))
}

func TestRemove_DeletesBlockAndSeparator(t *testing.T) {
	withBlock := Insert(userDoc, settings.Overlay{"two": "default"})
	got := Remove(withBlock, zerolog.Nop())

	assert.False(t, Contains(got))
	assert.Equal(t, userDoc, got)
}

func TestRemove_SynthesizesClosingBrace(t *testing.T) {
	// Corrupted input: the block swallowed the closing brace.
	doc := "  " + StartMarker + "\n  \"a\": 1\n  " + EndMarker + "\n"
	got := Remove(doc, zerolog.Nop())
	assert.True(t, strings.HasSuffix(got, "}"))
}

func TestApplyTwice_Idempotent(t *testing.T) {
	overlay := settings.Overlay{"two": "default", "editor.tabSize": float64(2)}

	once := Insert(Remove(userDoc, zerolog.Nop()), overlay)
	twice := Insert(Remove(once, zerolog.Nop()), overlay)
	assert.Equal(t, once, twice)
}

func TestRoundTrip_RestoresDocument(t *testing.T) {
	withBlock := Insert(userDoc, settings.Overlay{"two": "default"})
	restored := Remove(withBlock, zerolog.Nop())
	assert.Equal(t, userDoc, restored)
}

func TestRemove_TrailingCommaBeforeLineComment(t *testing.T) {
	// The user's dangling comma sits before a line comment; Insert reuses it
	// as the separator and Remove elides it, comment intact.
	doc := "{\n  \"a\": 1, // keep me\n}"
	withBlock := Insert(doc, settings.Overlay{"b": 2})
	assert.NotContains(t, withBlock, ",,")

	restored := Remove(withBlock, zerolog.Nop())
	assert.Equal(t, "{\n  \"a\": 1 // keep me\n}", restored)
	assert.Contains(t, restored, "// keep me")

	// Re-applying converges: the second pass reproduces the first byte for byte.
	again := Insert(restored, settings.Overlay{"b": 2})
	assert.Equal(t, withBlock, again)
}
