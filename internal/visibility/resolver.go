// Package visibility decides which objects a requesting user may see, given
// the path-scoped access rules stored in the relational backend.
//
// A path with zero rules is visible to everyone. As soon as one rule exists
// for a path, that path (and everything nested under it) is visible only to
// the users explicitly listed. Inheritance is top-down and exclusion
// dominant: a single unauthorized ancestor hides all descendants, no matter
// what rules the leaf itself carries.
//
// The resolver is a pure function over explicit inputs. Whether to fail open
// or closed when the rule source is unreachable is the caller's decision; the
// resolver is simply not invoked in that case.
package visibility

import (
	"strings"

	"github.com/pouchain/docstore/internal/objstore"
)

// Rule grants userID the right to see the object or folder at Path.
// Folder paths apply to every key nested under the folder prefix.
type Rule struct {
	Path   string `json:"path"`
	UserID string `json:"user_id"`
}

// FilterVisible returns the subset of objects the requesting user may see.
// An empty userID means an anonymous requester: only unrestricted paths
// remain. With no rules at all the input is returned unchanged.
func FilterVisible(objects []objstore.Object, rules []Rule, userID string) []objstore.Object {
	if len(rules) == 0 {
		return objects
	}

	restricted := make(map[string]struct{}, len(rules))
	allowed := make(map[string]struct{})
	for _, r := range rules {
		restricted[r.Path] = struct{}{}
		if userID != "" && r.UserID == userID {
			allowed[r.Path] = struct{}{}
		}
	}

	out := make([]objstore.Object, 0, len(objects))
	for _, obj := range objects {
		if KeyVisible(obj.Key, restricted, allowed) {
			out = append(out, obj)
		}
	}
	return out
}

// KeyVisible walks every ancestor prefix of key, from the top-level segment
// down to the full key. At each segment boundary both the exact form and the
// trailing-slash folder form are checked: if any ancestor is restricted and
// not explicitly allowed, the key is hidden.
func KeyVisible(key string, restricted, allowed map[string]struct{}) bool {
	parts := strings.Split(key, "/")
	current := ""
	for i, part := range parts {
		if i > 0 {
			current += "/"
		}
		current += part

		if blocked(current, restricted, allowed) {
			return false
		}
		// Folder rules are commonly stored with a trailing slash.
		if i < len(parts)-1 && blocked(current+"/", restricted, allowed) {
			return false
		}
	}
	return true
}

func blocked(path string, restricted, allowed map[string]struct{}) bool {
	if _, ok := restricted[path]; !ok {
		return false
	}
	_, ok := allowed[path]
	return !ok
}
