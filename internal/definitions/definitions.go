// internal/definitions/definitions.go
//
// Word definitions.
// Responsibilities:
//   - Loading the combined word -> definition table (dictionary_combined.json).
//   - Trimming it to the words that appear in at least one loaded wordlist.
//   - Reporting how much of the combined table survived the trim.

package definitions

import (
	"encoding/json"
	"io/fs"

	"github.com/silvncr/watchword-bot/internal/errs"
)

const CombinedFile = "dictionary_combined.json"

// Table maps a normalized word to its definition.
type Table map[string]string

// Lookup returns the definition of word, if any.
func (t Table) Lookup(word string) (string, bool) {
	d, ok := t[word]
	return d, ok
}

// Filtered is the result of restricting the combined table to known words.
type Filtered struct {
	Table    Table
	Original int // entries in the combined table before filtering
}

// Coverage is len(Table) / Original, or 0 for an empty combined table.
func (f Filtered) Coverage() float64 {
	if f.Original == 0 {
		return 0
	}
	return float64(len(f.Table)) / float64(f.Original)
}

// Load reads CombinedFile from fsys.
func Load(fsys fs.FS) (Table, error) {
	b, err := fs.ReadFile(fsys, CombinedFile)
	if err != nil {
		return nil, errs.NewConfig("read", CombinedFile, err)
	}
	var t Table
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, errs.NewConfig("parse", CombinedFile, err)
	}
	return t, nil
}

// Filter keeps only the entries of all whose key is in words.
func Filter(all Table, words map[string]struct{}) Filtered {
	out := make(Table)
	for w, d := range all {
		if _, ok := words[w]; ok {
			out[w] = d
		}
	}
	return Filtered{Table: out, Original: len(all)}
}

// LoadFiltered reads the combined table and filters it in one step.
// The unfiltered table is dropped once filtering is done.
func LoadFiltered(fsys fs.FS, words map[string]struct{}) (Filtered, error) {
	all, err := Load(fsys)
	if err != nil {
		return Filtered{}, err
	}
	return Filter(all, words), nil
}
