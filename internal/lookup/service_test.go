package lookup

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvncr/watchword-bot/internal/definitions"
	"github.com/silvncr/watchword-bot/internal/errs"
	"github.com/silvncr/watchword-bot/internal/versions"
	"github.com/silvncr/watchword-bot/internal/words"
)

// testData has two canonical versions with wordlists ("1.0", "2.0"), an alias
// of 1.0 ("1.1"), and a canonical version with no files ("3.0").
func testData() fstest.MapFS {
	return fstest.MapFS{
		versions.ReferencesFile: {Data: []byte(`{"1.0": null, "1.1": "1.0", "2.0": null, "3.0": null}`)},
		versions.VersionsFile:   {Data: []byte(`["2.0", "1.1", "1.0", "3.0"]`)},
		"wordlists/1.0_wordlist.txt":  {Data: []byte("cat\ndog\nsky\n")},
		"wordlists/1.0_badlist.txt":   {Data: []byte("dog\nbadword\n")},
		"wordlists/2.0_wordlist.txt":  {Data: []byte("cat\n")},
		"wordlists/2.0_cleanlist.txt": {Data: []byte("emu\n")},
		"wordlists/3.0_extra.txt":     {Data: []byte("ghost\n")},
		definitions.CombinedFile: {Data: []byte(`{
			"CAT": "a feline",
			"DOG": "a canine",
			"GHOST": "a spirit",
			"ZEBRA": "a striped horse"
		}`)},
	}
}

func buildService(t *testing.T) *Service {
	t.Helper()
	s, err := Build(testData())
	require.NoError(t, err)
	return s
}

func TestCheck_Valid(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	res, err := s.Check("dog", "1.0")
	require.NoError(t, err)
	assert.Equal(t, Valid, res.Outcome)
	assert.Equal(t, "DOG", res.Word)
	assert.Equal(t, []string{"bad"}, res.Flags)
	assert.True(t, res.HasDefinition)
	assert.Equal(t, "a canine", res.Definition)
	assert.Equal(t, "1.0", res.VersionString)
}

func TestCheck_StripsPunctuation(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	res, err := s.Check("sky!!", "1.0")
	require.NoError(t, err)
	assert.Equal(t, Valid, res.Outcome)
	assert.Equal(t, "SKY", res.Word)
	assert.Empty(t, res.Flags)
	assert.Equal(t, "(none)", res.FlagString())
	assert.False(t, res.HasDefinition)
}

func TestCheck_Alias(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	res, err := s.Check("BadWord", "1.1")
	require.NoError(t, err)
	assert.Equal(t, Valid, res.Outcome)
	assert.Equal(t, "1.0", res.Canonical)
	assert.Equal(t, "1.0 -> 1.1", res.VersionString)
	assert.Equal(t, "bad", res.FlagString())
}

func TestCheck_NotValid(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	for _, tc := range []struct{ word, version string }{
		{"emu", "1.0"},
		{"dog", "2.0"},
		{"zebra", "1.0"},
		{"ghost", "3.0"},
	} {
		res, err := s.Check(tc.word, tc.version)
		require.NoError(t, err)
		assert.Equal(t, NotValid, res.Outcome, "%s in %s", tc.word, tc.version)
		assert.Empty(t, res.Flags)
		assert.False(t, res.HasDefinition)
		assert.Empty(t, res.Definition)
	}
}

func TestCheck_DefaultVersion(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	res, err := s.Check("emu", "")
	require.NoError(t, err)
	assert.Equal(t, "2.0", res.Version)
	assert.Equal(t, Valid, res.Outcome)
	assert.Equal(t, []string{"clean"}, res.Flags)
}

func TestCheck_Rejected(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	tests := []struct {
		name, word, normalized string
	}{
		{"too short", "a", "A"},
		{"too long", "THISWORDISWAYTOOLONGTOBEVALIDACCORDINGTOTHERULES", "THISWORDISWAYTOOLONGTOBEVALIDACCORDINGTOTHERULES"},
		{"no letters", "!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Check(tt.word, "1.0")
			var inv *errs.InvalidInputError
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, words.ReasonLength, inv.Reason)
			assert.Equal(t, tt.normalized, res.Word)
			got, ok := AsRejected(err)
			assert.True(t, ok)
			assert.Same(t, inv, got)
		})
	}
}

func TestCheck_UnknownVersion(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	_, err := s.Check("cat", "9.9")
	require.ErrorIs(t, err, errs.ErrUnknownVersion)
	_, ok := AsRejected(err)
	assert.False(t, ok)
}

func TestCheck_EveryLoadedWordIsValid(t *testing.T) {
	t.Parallel()

	lists := words.Wordlists{
		"1.0": {"CAT": words.NewFlags(), "BADWORD": words.NewFlags("bad"), "EMU": words.NewFlags("bad", "clean")},
	}
	res, err := versions.New(map[string]*string{"1.0": nil}, []string{"1.0"})
	require.NoError(t, err)
	s := New(res, lists, definitions.Filtered{Table: definitions.Table{}})

	for w, flags := range lists["1.0"] {
		r, err := s.Check(w, "1.0")
		require.NoError(t, err)
		assert.Equal(t, Valid, r.Outcome)
		assert.Equal(t, flags.Sorted(), r.Flags)
	}
}

func TestCoverage(t *testing.T) {
	t.Parallel()

	lists := words.Wordlists{
		"1.0": {"CAT": words.NewFlags(), "BADWORD": words.NewFlags("bad")},
	}
	res, err := versions.New(map[string]*string{"1.0": nil, "1.0b": ptr("1.0")}, []string{"1.0", "1.0b"})
	require.NoError(t, err)
	defs := definitions.Filter(definitions.Table{"CAT": "a feline"}, lists.Full())
	s := New(res, lists, defs)

	for _, v := range []string{"1.0", "1.0b"} {
		c, err := s.Coverage(v)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Words)
		assert.Equal(t, 1, c.Definitions)
		assert.InDelta(t, 50.0, c.Percent, 1e-9)
	}
}

func TestCoverage_EmptyWordlist(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	_, err := s.Coverage("3.0")
	var empty *errs.EmptyWordlistError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "3.0", empty.Version)
}

func TestStats(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	st := s.Stats()
	// 1.0: CAT DOG SKY BADWORD; 2.0: CAT EMU; 3.0 skipped.
	assert.Equal(t, 5, st.TotalWords)
	assert.Equal(t, 2, st.Definitions, "GHOST belongs to a skipped version and is filtered out")
	assert.Equal(t, 4, st.DefinitionsOriginal)
	assert.InDelta(t, 0.5, st.DefinitionCoverage, 1e-9)
}

func TestVersions(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	vs := s.Versions()
	require.Len(t, vs, 4)
	assert.Equal(t, VersionInfo{Label: "2.0", Canonical: "2.0", Display: "2.0", Default: true, Words: 2}, vs[0])
	assert.Equal(t, VersionInfo{Label: "1.1", Canonical: "1.0", Display: "1.0 -> 1.1", Words: 4}, vs[1])
	assert.Equal(t, 0, vs[3].Words)
	assert.Equal(t, "2.0", s.DefaultVersion())
}

func TestVersionString(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	got, err := s.VersionString("1.1")
	require.NoError(t, err)
	assert.Equal(t, "1.0 -> 1.1", got)

	got, err = s.VersionString("2.0")
	require.NoError(t, err)
	assert.Equal(t, "2.0", got)

	_, err = s.VersionString("9.9")
	require.ErrorIs(t, err, errs.ErrUnknownVersion)
}

func TestCanonicals(t *testing.T) {
	t.Parallel()
	s := buildService(t)

	assert.Equal(t, []VersionInfo{
		{Label: "2.0", Canonical: "2.0", Display: "2.0", Words: 2},
		{Label: "1.0", Canonical: "1.0", Display: "1.0", Words: 4},
		{Label: "3.0", Canonical: "3.0", Display: "3.0", Words: 0},
	}, s.Canonicals())
}

func TestBuild_AliasOfUnlistedRoot(t *testing.T) {
	t.Parallel()

	s, err := Build(fstest.MapFS{
		versions.ReferencesFile:      {Data: []byte(`{"1.0": null, "1.1": "1.0"}`)},
		versions.VersionsFile:        {Data: []byte(`["1.1"]`)},
		"wordlists/1.0_wordlist.txt": {Data: []byte("strasse\n")},
		definitions.CombinedFile:     {Data: []byte(`{"STRASSE": "a street"}`)},
	})
	require.NoError(t, err)

	res, err := s.Check("straße", "1.1")
	require.NoError(t, err)
	assert.Equal(t, "STRASSE", res.Word)
	assert.Equal(t, Valid, res.Outcome)
	assert.Equal(t, "a street", res.Definition)

	c, err := s.Coverage("1.1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Words)
	assert.Equal(t, 1, c.Definitions)
}

func TestBuild_ConfigErrors(t *testing.T) {
	t.Parallel()

	fsys := testData()
	delete(fsys, definitions.CombinedFile)
	_, err := Build(fsys)
	require.ErrorIs(t, err, errs.ErrConfig)

	fsys = testData()
	fsys[versions.ReferencesFile] = &fstest.MapFile{Data: []byte(`{"1.0": "1.1", "1.1": "1.0", "2.0": null, "3.0": null}`)}
	_, err = Build(fsys)
	require.ErrorIs(t, err, errs.ErrConfig)
}

func ptr(s string) *string { return &s }
