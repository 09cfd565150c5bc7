// Package settings turns nested configuration trees into flat dotted-path
// overlays and computes the inherited set across profiles.
package settings

import (
	"reflect"
	"sort"
)

// Overlay is a flat mapping from dotted-path key (e.g. "editor.fontSize") to
// a leaf value. Arrays are leaves: they are never merged element-wise.
type Overlay map[string]any

// SortedKeys returns the overlay's keys in ascending order. Every consumer
// that renders or compares overlays goes through this, which keeps output
// stable across runs.
func (o Overlay) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Flatten converts a nested tree into an Overlay. Plain sub-maps extend the
// key path with a dot per nesting level; scalars and arrays terminate
// recursion. A non-empty prefix is prepended to every key.
//
// The traversal carries a stack of visited map identities, so trees built by
// hand with reference cycles still terminate. A map revisited while it is
// still on the recursion stack contributes nothing.
func Flatten(tree map[string]any, prefix string) Overlay {
	out := make(Overlay)
	flattenInto(out, tree, prefix, make(map[uintptr]bool))
	return out
}

func flattenInto(out Overlay, tree map[string]any, prefix string, onStack map[uintptr]bool) {
	if len(tree) == 0 {
		return
	}
	id := reflect.ValueOf(tree).Pointer()
	if onStack[id] {
		return
	}
	onStack[id] = true
	defer delete(onStack, id)

	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			flattenInto(out, sub, key, onStack)
			continue
		}
		out[key] = v
	}
}

// Diff returns every key of parent that is absent from own, value-blind: a
// key the profile defines itself is never inherited, even when the values
// are equal. See DESIGN.md for why presence wins over value equality.
func Diff(parent, own Overlay) Overlay {
	out := make(Overlay)
	for k, v := range parent {
		if _, defined := own[k]; !defined {
			out[k] = v
		}
	}
	return out
}
