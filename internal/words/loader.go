// internal/words/loader.go
//
// Loads per-version wordlists from category files.
//
// Layout inside the data tree:
//   watchword_flags.json             {"wordlist": [], "badlist": ["bad"], ...}
//   wordlists/<version>_<category>.txt   one word per line
//
// For each canonical version, every category file that exists is read, each
// line trimmed and upper-cased, and merged into one word -> flags map. A word
// seen in several files (or twice in one file) gets the union of the
// categories' flags. A version with no category files is left out entirely.

package words

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/silvncr/watchword-bot/internal/errs"
)

const (
	CategoriesFile = "watchword_flags.json"
	WordlistDir    = "wordlists"
)

// Categories maps a category name to the flags it contributes.
type Categories map[string][]string

// DefaultCategories is used when the data tree has no CategoriesFile.
func DefaultCategories() Categories {
	return Categories{
		"wordlist":  {},
		"badlist":   {"bad"},
		"cleanlist": {"clean"},
	}
}

// Names returns the category names in sorted order.
func (c Categories) Names() []string {
	out := make([]string, 0, len(c))
	for name := range c {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LoadCategories reads CategoriesFile from fsys, falling back to
// DefaultCategories when the file does not exist.
func LoadCategories(fsys fs.FS) (Categories, error) {
	b, err := fs.ReadFile(fsys, CategoriesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultCategories(), nil
	}
	if err != nil {
		return nil, errs.NewConfig("read", CategoriesFile, err)
	}
	var c Categories
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, errs.NewConfig("parse", CategoriesFile, err)
	}
	if len(c) == 0 {
		return nil, errs.NewConfig("validate", CategoriesFile, errors.New("no categories defined"))
	}
	return c, nil
}

// CategoryPath returns the file path for one version's category list.
func CategoryPath(version, category string) string {
	return path.Join(WordlistDir, version+"_"+category+".txt")
}

// Load builds the wordlist of every version in canonical.
// Callers pass only canonical labels; aliases resolve onto these at query time.
func Load(fsys fs.FS, canonical []string, cats Categories) (Wordlists, error) {
	out := make(Wordlists, len(canonical))
	for _, version := range canonical {
		wl, err := LoadVersion(fsys, version, cats)
		if err != nil {
			return nil, err
		}
		if len(wl) == 0 {
			continue
		}
		out[version] = wl
	}
	return out, nil
}

// LoadVersion merges all category files present for version.
// It returns an empty Wordlist when none exist.
func LoadVersion(fsys fs.FS, version string, cats Categories) (Wordlist, error) {
	wl := make(Wordlist)
	for _, name := range cats.Names() {
		p := CategoryPath(version, name)
		list, err := readWordFile(fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errs.NewConfig("read", p, err)
		}
		flags := NewFlags(cats[name]...)
		for _, w := range list {
			wl[w] = wl[w].Union(flags)
		}
	}
	return wl, nil
}

// readWordFile loads one word per line from fsys,
// trimming and upper-casing each line and skipping blanks.
func readWordFile(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := upper(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}
