// assets/embed.go
//
// Embedded sample dictionary data, used when DATA_DIR is not set.
// The tree has the same layout as a real data directory:
//
//	watchword_references.json
//	watchword_versions.json
//	watchword_flags.json
//	dictionary_combined.json
//	wordlists/<version>_<category>.txt

package assets

import (
	"embed"
	"io/fs"
)

//go:embed data
var embedded embed.FS

// Data returns the embedded data tree rooted at its top directory.
func Data() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}
