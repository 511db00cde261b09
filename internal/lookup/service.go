// internal/lookup/service.go
//
// Query-facing dictionary core.
//
// A Service is built once at startup (Build or New) and never mutated, so any
// number of request handlers may share one without locking. It answers:
//   - Check:         is a word valid in a version? with flags and definition.
//   - Coverage:      how many of a version's words have definitions.
//   - VersionString: display form of a version label.
//   - Stats:         startup counters for status reporting.
//
// Versions are resolved to their canonical label before every lookup, so
// aliased versions share the canonical wordlist.

package lookup

import (
	"errors"
	"io/fs"

	"github.com/silvncr/watchword-bot/internal/definitions"
	"github.com/silvncr/watchword-bot/internal/errs"
	"github.com/silvncr/watchword-bot/internal/versions"
	"github.com/silvncr/watchword-bot/internal/words"
)

// Outcome of a successful check.
type Outcome string

const (
	Valid    Outcome = "valid"
	NotValid Outcome = "not_valid"
)

// Result is returned by Check.
type Result struct {
	Word          string   `json:"word"`          // normalized word
	Version       string   `json:"version"`       // requested label
	Canonical     string   `json:"canonical"`     // resolved label
	VersionString string   `json:"versionString"` // display form
	Outcome       Outcome  `json:"outcome"`
	Flags         []string `json:"flags"` // sorted; empty unless Valid
	Definition    string   `json:"definition,omitempty"`
	HasDefinition bool     `json:"hasDefinition"`
}

// FlagString joins the flags with ", " or returns "(none)".
func (r Result) FlagString() string {
	return words.NewFlags(r.Flags...).String()
}

// CoverageStats is returned by Coverage.
type CoverageStats struct {
	Version       string  `json:"version"`
	VersionString string  `json:"versionString"`
	Words         int     `json:"words"`
	Definitions   int     `json:"definitions"`
	Percent       float64 `json:"percent"`
}

// Stats are the startup counters.
type Stats struct {
	TotalWords          int     `json:"totalWords"`          // distinct words across all versions
	Definitions         int     `json:"definitions"`         // definitions kept after filtering
	DefinitionsOriginal int     `json:"definitionsOriginal"` // entries in the combined table
	DefinitionCoverage  float64 `json:"definitionCoverage"`  // Definitions / DefinitionsOriginal
}

// VersionInfo describes one listed version.
type VersionInfo struct {
	Label     string `json:"label"`
	Canonical string `json:"canonical"`
	Display   string `json:"display"`
	Default   bool   `json:"default"`
	Words     int    `json:"words"` // 0 when the canonical version has no wordlist
}

// Service holds the immutable lookup tables.
type Service struct {
	versions *versions.Resolver
	lists    words.Wordlists
	defs     definitions.Filtered
	defined  map[string]int // canonical version -> words with a definition
	total    int
}

// New wires prebuilt tables into a Service.
func New(res *versions.Resolver, lists words.Wordlists, defs definitions.Filtered) *Service {
	s := &Service{
		versions: res,
		lists:    lists,
		defs:     defs,
		defined:  make(map[string]int, len(lists)),
		total:    len(lists.Full()),
	}
	for v, wl := range lists {
		n := 0
		for w := range wl {
			if _, ok := defs.Table[w]; ok {
				n++
			}
		}
		s.defined[v] = n
	}
	return s
}

// Build loads every input from fsys and returns a ready Service.
// Any error is a *errs.ConfigError and should stop the process.
func Build(fsys fs.FS) (*Service, error) {
	res, err := versions.Load(fsys)
	if err != nil {
		return nil, err
	}
	cats, err := words.LoadCategories(fsys)
	if err != nil {
		return nil, err
	}

	lists, err := words.Load(fsys, res.Canonicals(), cats)
	if err != nil {
		return nil, err
	}
	defs, err := definitions.LoadFiltered(fsys, lists.Full())
	if err != nil {
		return nil, err
	}
	return New(res, lists, defs), nil
}

// Check normalizes and validates raw, resolves version, and tests membership.
// An empty version means the default version.
//
// Errors: *errs.InvalidInputError for a rejected word (Result.Word is still
// set), errs.ErrUnknownVersion for a label not in the reference map.
func (s *Service) Check(raw, version string) (Result, error) {
	word := words.Normalize(raw)
	if err := words.Validate(word); err != nil {
		return Result{Word: word}, err
	}
	if version == "" {
		version = s.versions.Default()
	}
	root, err := s.versions.Find(version)
	if err != nil {
		return Result{Word: word}, err
	}
	display, err := s.versions.String(version)
	if err != nil {
		return Result{Word: word}, err
	}

	res := Result{
		Word:          word,
		Version:       version,
		Canonical:     root,
		VersionString: display,
		Outcome:       NotValid,
		Flags:         []string{},
	}
	flags, ok := s.lists[root][word]
	if !ok {
		return res, nil
	}
	res.Outcome = Valid
	res.Flags = flags.Sorted()
	res.Definition, res.HasDefinition = s.defs.Table.Lookup(word)
	return res, nil
}

// Coverage reports how many words of version's canonical wordlist have a
// definition. It returns *errs.EmptyWordlistError when the wordlist is empty.
func (s *Service) Coverage(version string) (CoverageStats, error) {
	if version == "" {
		version = s.versions.Default()
	}
	root, err := s.versions.Find(version)
	if err != nil {
		return CoverageStats{}, err
	}
	display, err := s.versions.String(version)
	if err != nil {
		return CoverageStats{}, err
	}
	n := len(s.lists[root])
	if n == 0 {
		return CoverageStats{}, &errs.EmptyWordlistError{Version: root}
	}
	d := s.defined[root]
	return CoverageStats{
		Version:       version,
		VersionString: display,
		Words:         n,
		Definitions:   d,
		Percent:       float64(d) / float64(n) * 100,
	}, nil
}

// VersionString returns the display form of version.
func (s *Service) VersionString(version string) (string, error) {
	return s.versions.String(version)
}

// DefaultVersion returns the first listed version.
func (s *Service) DefaultVersion() string { return s.versions.Default() }

// Versions lists every version in display order.
func (s *Service) Versions() []VersionInfo {
	list := s.versions.List()
	out := make([]VersionInfo, 0, len(list))
	for i, v := range list {
		root, err := s.versions.Find(v)
		if err != nil {
			continue
		}
		display, err := s.versions.String(v)
		if err != nil {
			continue
		}
		out = append(out, VersionInfo{
			Label:     v,
			Canonical: root,
			Display:   display,
			Default:   i == 0,
			Words:     len(s.lists[root]),
		})
	}
	return out
}

// Canonicals lists every root version the service was asked to load, in
// version-list order, with its word count (0 when no files were found).
func (s *Service) Canonicals() []VersionInfo {
	roots := s.versions.Canonicals()
	out := make([]VersionInfo, 0, len(roots))
	for _, v := range roots {
		out = append(out, VersionInfo{Label: v, Canonical: v, Display: v, Words: len(s.lists[v])})
	}
	return out
}

// Stats returns the startup counters.
func (s *Service) Stats() Stats {
	return Stats{
		TotalWords:          s.total,
		Definitions:         len(s.defs.Table),
		DefinitionsOriginal: s.defs.Original,
		DefinitionCoverage:  s.defs.Coverage(),
	}
}

// AsRejected reports whether err is a per-request input rejection and
// returns it.
func AsRejected(err error) (*errs.InvalidInputError, bool) {
	var inv *errs.InvalidInputError
	if errors.As(err, &inv) {
		return inv, true
	}
	return nil, false
}
