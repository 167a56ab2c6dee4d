// Package docpatch applies logical set/delete operations to a JSON-with-
// comments document while leaving every byte outside the patched subtree
// untouched. Parsing and minimal-edit application are delegated to
// tailscale/hujson (RFC 6902 patches over a lossless JWCC tree); this
// package contributes path traversal, container creation, and the
// all-or-nothing failure contract.
package docpatch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/nulzo/model-config-kit/internal/core/domain"
)

// Step is one hop of a structural path: an object key or an array index.
type Step struct {
	key     string
	index   int
	isIndex bool
}

// Key builds an object-member step.
func Key(k string) Step { return Step{key: k} }

// Index builds an array-element step.
func Index(i int) Step { return Step{index: i, isIndex: true} }

// Path locates a value inside a hierarchical document.
type Path []Step

// Pointer renders the path as an RFC 6901 JSON pointer.
func (p Path) Pointer() string {
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		if s.isIndex {
			b.WriteString(strconv.Itoa(s.index))
		} else {
			b.WriteString(escapePointer(s.key))
		}
	}
	return b.String()
}

func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// Set places value at path, creating missing intermediate containers. The
// operations are applied as one coherent RFC 6902 sequence, each computed
// against the result of the previous one. Re-applying the same value yields
// identical text. On any failure the original text is returned unchanged.
func Set(text []byte, path Path, value interface{}) ([]byte, error) {
	doc, err := hujson.Parse(text)
	if err != nil {
		return text, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	existing, err := deepestExisting(&doc, path)
	if err != nil {
		return text, err
	}

	var ops []interface{}
	// Create the containers between the deepest existing prefix and the
	// final step. Each container's kind is dictated by the step after it.
	for i := existing; i < len(path)-1; i++ {
		ops = append(ops, map[string]interface{}{
			"op":    "add",
			"path":  path[:i+1].Pointer(),
			"value": emptyContainer(path[i+1]),
		})
	}

	op := "add"
	if existing == len(path) {
		op = "replace"
	}
	ops = append(ops, map[string]interface{}{
		"op":    op,
		"path":  path.Pointer(),
		"value": value,
	})

	if err := applyPatch(&doc, ops); err != nil {
		return text, fmt.Errorf("%w: %v", domain.ErrInvalidPath, err)
	}
	return doc.Pack(), nil
}

// Delete removes the member or element at path. Surrounding formatting,
// comments, and comma conventions are preserved by the minimal-edit engine.
// Deleting a path whose leaf does not exist is a no-op; a path that
// collides with a non-container value is rejected.
func Delete(text []byte, path Path) ([]byte, error) {
	if len(path) == 0 {
		return text, domain.ErrInvalidPath
	}

	doc, err := hujson.Parse(text)
	if err != nil {
		return text, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	existing, err := deepestExisting(&doc, path)
	if err != nil {
		return text, err
	}
	if existing < len(path) {
		return text, nil
	}

	ops := []interface{}{
		map[string]interface{}{"op": "remove", "path": path.Pointer()},
	}
	if err := applyPatch(&doc, ops); err != nil {
		return text, fmt.Errorf("%w: %v", domain.ErrInvalidPath, err)
	}
	return doc.Pack(), nil
}

// deepestExisting walks path inside doc and returns how many leading steps
// resolve to existing values. It rejects paths that descend into a literal
// or address an object as an array (and vice versa) before any mutation is
// attempted.
func deepestExisting(doc *hujson.Value, path Path) (int, error) {
	current := doc
	for i, step := range path {
		switch current.Value.(type) {
		case *hujson.Object:
			if step.isIndex {
				return 0, domain.ErrInvalidPath
			}
		case *hujson.Array:
			if !step.isIndex {
				return 0, domain.ErrInvalidPath
			}
		default:
			return 0, domain.ErrInvalidPath
		}

		next := doc.Find(path[:i+1].Pointer())
		if next == nil {
			return i, nil
		}
		current = next
	}
	return len(path), nil
}

func emptyContainer(next Step) interface{} {
	if next.isIndex {
		return []interface{}{}
	}
	return map[string]interface{}{}
}

func applyPatch(doc *hujson.Value, ops []interface{}) error {
	raw, err := json.Marshal(ops)
	if err != nil {
		return err
	}
	return doc.Patch(raw)
}
