// internal/versions/versions.go
//
// Version reference resolution for Watchword game versions.
//
// Several version labels may share one wordlist. The reference map points each
// label at an optional parent; a label with a null parent is canonical (a root).
// Resolution follows parents until a root is reached, with a hop bound equal to
// the number of labels so a malformed map fails instead of looping.
//
// Data files (read from an fs.FS rooted at the data directory):
//   watchword_references.json   {"1.2": null, "1.2b": "1.2", ...}
//   watchword_versions.json     ["1.2b", "1.2", ...]  (first entry is the default)
//
// A Resolver is immutable once built and safe for concurrent use.

package versions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/silvncr/watchword-bot/internal/errs"
)

const (
	ReferencesFile = "watchword_references.json"
	VersionsFile   = "watchword_versions.json"
)

// Resolver maps version labels to their canonical label.
type Resolver struct {
	refs map[string]*string // label -> parent (nil = canonical)
	list []string           // display order; list[0] is the default
}

// New validates refs and list and returns a Resolver.
//
// Validation:
//   - list must be non-empty and every entry must be a key of refs.
//   - every key must resolve to a root (no dangling parents, no cycles).
func New(refs map[string]*string, list []string) (*Resolver, error) {
	if len(list) == 0 {
		return nil, errs.NewConfig("validate", VersionsFile, errors.New("version list is empty"))
	}
	r := &Resolver{
		refs: make(map[string]*string, len(refs)),
		list: append([]string(nil), list...),
	}
	for k, v := range refs {
		if v != nil {
			p := *v
			v = &p
		}
		r.refs[k] = v
	}
	for k := range r.refs {
		if _, err := r.Find(k); err != nil {
			return nil, err
		}
	}
	for _, v := range r.list {
		if _, ok := r.refs[v]; !ok {
			return nil, errs.NewConfig("validate", v, fmt.Errorf("version listed in %s has no entry in %s", VersionsFile, ReferencesFile))
		}
	}
	return r, nil
}

// Load reads the reference map and version list from fsys and validates them.
func Load(fsys fs.FS) (*Resolver, error) {
	var refs map[string]*string
	if err := readJSON(fsys, ReferencesFile, &refs); err != nil {
		return nil, err
	}
	var list []string
	if err := readJSON(fsys, VersionsFile, &list); err != nil {
		return nil, err
	}
	return New(refs, list)
}

// Find returns the canonical label for version.
// A label with no parent is returned unchanged.
func (r *Resolver) Find(version string) (string, error) {
	cur := version
	for hops := 0; hops <= len(r.refs); hops++ {
		parent, ok := r.refs[cur]
		if !ok {
			if cur == version {
				return "", fmt.Errorf("%w: %q", errs.ErrUnknownVersion, version)
			}
			return "", errs.NewConfig("resolve", version, fmt.Errorf("dangling parent %q", cur))
		}
		if parent == nil {
			return cur, nil
		}
		cur = *parent
	}
	return "", errs.NewConfig("resolve", version, errors.New("reference cycle"))
}

// String returns the display form of version: the label itself when canonical,
// otherwise "<canonical> -> <version>".
func (r *Resolver) String(version string) (string, error) {
	root, err := r.Find(version)
	if err != nil {
		return "", err
	}
	if root == version {
		return version, nil
	}
	return root + " -> " + version, nil
}

// List returns the version labels in display order.
func (r *Resolver) List() []string {
	return append([]string(nil), r.list...)
}

// Default returns the first listed version.
func (r *Resolver) Default() string { return r.list[0] }

// Canonicals returns the root of every listed version, once each, in list
// order. A root reached only through a listed alias is included even when
// the root itself is not listed.
func (r *Resolver) Canonicals() []string {
	seen := make(map[string]bool, len(r.list))
	var out []string
	for _, v := range r.list {
		root, err := r.Find(v)
		if err != nil || seen[root] {
			continue
		}
		seen[root] = true
		out = append(out, root)
	}
	return out
}

func readJSON(fsys fs.FS, name string, v any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errs.NewConfig("read", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errs.NewConfig("parse", name, err)
	}
	return nil
}
