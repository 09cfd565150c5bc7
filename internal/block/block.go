// Package block splices the managed inherited-settings region into a
// profile's settings.json while leaving every byte the user wrote alone.
package block

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ruminaider/profile-inherit/internal/jsonc"
	"github.com/ruminaider/profile-inherit/internal/settings"
)

// Marker lines delimiting the managed block. Each appears on its own line,
// prefixed with the document's indentation unit.
const (
	StartMarker = "// --- BEGIN INHERITED SETTINGS (generated by profile-inherit) ---"
	EndMarker   = "// --- END INHERITED SETTINGS ---"

	warningLine = "// Do not edit between these markers; the block is rewritten on every apply."
)

// Contains reports whether the document carries both block markers.
func Contains(doc string) bool {
	return strings.Contains(doc, StartMarker) && strings.Contains(doc, EndMarker)
}

// Remove deletes the managed block, start marker line through end marker line
// inclusive, and trims the field separator that attached it. Documents with
// no markers pass through untouched. A document with exactly one marker is
// left alone too, with a warning: someone edited the block by hand, and
// automatic repair risks eating their content.
func Remove(doc string, logger zerolog.Logger) string {
	start := strings.Index(doc, StartMarker)
	end := strings.Index(doc, EndMarker)

	if start < 0 && end < 0 {
		return doc
	}
	if (start < 0) != (end < 0) {
		logger.Warn().Msg("only one managed block marker found, leaving file untouched")
		return doc
	}
	if end < start {
		return doc
	}

	lineStart := strings.LastIndexByte(doc[:start], '\n') + 1
	lineEnd := end + len(EndMarker)
	if i := strings.IndexByte(doc[lineEnd:], '\n'); i >= 0 {
		lineEnd += i + 1
	} else {
		lineEnd = len(doc)
	}

	out := jsonc.TrimTrailingComma(doc[:lineStart] + doc[lineEnd:])

	// Fallback for corrupted input only: a settings document must still
	// close its top-level object.
	if last := jsonc.LastMeaningfulIndex(out); last < 0 || out[last] != '}' {
		out = strings.TrimRight(out, " \t\r\n") + "\n}"
	}

	return out
}

// Insert renders the overlay as a managed block and splices it in front of
// the document's last closing brace, so the block always forms the last
// top-level entries. Empty overlays are a no-op; a document with no closing
// brace at all is replaced by an empty object first.
func Insert(doc string, overlay settings.Overlay) string {
	if len(overlay) == 0 {
		return doc
	}

	brace := strings.LastIndexByte(doc, '}')
	if brace < 0 {
		doc = "{\n}"
		brace = strings.LastIndexByte(doc, '}')
	}

	before := doc[:brace]
	tail := doc[brace:]
	indent := jsonc.SniffIndent(doc)

	// A separator is needed unless the document is still empty or the last
	// meaningful character already attaches cleanly.
	if last := jsonc.LastMeaningfulIndex(before); last >= 0 && before[last] != '{' && before[last] != ',' {
		before = before[:last+1] + "," + before[last+1:]
	}

	if before != "" && !strings.HasSuffix(before, "\n") {
		before += "\n"
	}

	return before + render(overlay, indent) + tail
}

// render produces the block text: start marker, warning, one line per key in
// sorted order with standard JSON literal values, end marker.
func render(overlay settings.Overlay, indent string) string {
	var b strings.Builder
	b.WriteString(indent + StartMarker + "\n")
	b.WriteString(indent + warningLine + "\n")

	keys := overlay.SortedKeys()
	for i, k := range keys {
		value, err := json.Marshal(overlay[k])
		if err != nil {
			// Values come out of json.Unmarshal, so this only fires on
			// hand-built overlays carrying unmarshalable types.
			value = []byte("null")
		}
		line := fmt.Sprintf("%s%q: %s", indent, k, value)
		if i < len(keys)-1 {
			line += ","
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(indent + EndMarker + "\n")
	return b.String()
}
