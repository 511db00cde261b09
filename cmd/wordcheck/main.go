// Command wordcheck queries the Watchword dictionary from the terminal.
//
// Usage:
//
//	wordcheck [-data DIR] [-version V] check WORD
//	wordcheck [-data DIR] [-version V] coverage
//	wordcheck [-data DIR] versions
//
// Without -data the embedded sample data is used. Exit status is 2 when the
// word is rejected and 1 on any other error.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/silvncr/watchword-bot/assets"
	"github.com/silvncr/watchword-bot/internal/commands"
	"github.com/silvncr/watchword-bot/internal/lookup"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fl := flag.NewFlagSet("wordcheck", flag.ContinueOnError)
	fl.SetOutput(stderr)
	dataDir := fl.String("data", "", "dictionary data directory (default: embedded sample)")
	version := fl.String("version", "", "Watchword version (default: first listed)")
	if err := fl.Parse(args); err != nil {
		return 1
	}

	rest := fl.Args()
	if len(rest) == 0 {
		fmt.Fprintln(stderr, "Usage: wordcheck [-data DIR] [-version V] check WORD | coverage | versions")
		return 1
	}

	var fsys fs.FS = assets.Data()
	if *dataDir != "" {
		fsys = os.DirFS(*dataDir)
	}
	core, err := lookup.Build(fsys)
	if err != nil {
		fmt.Fprintf(stderr, "load dictionary: %v\n", err)
		return 1
	}
	cmds := commands.New(core)

	switch rest[0] {
	case "check":
		if len(rest) != 2 {
			fmt.Fprintln(stderr, "Usage: wordcheck check WORD")
			return 1
		}
		p, _, err := cmds.Check(rest[1], *version)
		if err != nil {
			fmt.Fprintf(stderr, "check: %v\n", err)
			return 1
		}
		render(stdout, p)
		if p.Kind == commands.KindRejected {
			return 2
		}
	case "coverage":
		p, err := cmds.Coverage(*version)
		if err != nil {
			fmt.Fprintf(stderr, "coverage: %v\n", err)
			return 1
		}
		render(stdout, p)
	case "versions":
		render(stdout, cmds.Versions())
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", rest[0])
		return 1
	}
	return 0
}

// render prints a panel as plain text, dropping code fences.
func render(w io.Writer, p commands.Panel) {
	fmt.Fprintln(w, p.Title)
	if p.Description != "" {
		fmt.Fprintln(w, plain(p.Description))
	}
	for _, f := range p.Fields {
		fmt.Fprintf(w, "%s: %s\n", f.Name, plain(f.Value))
	}
	fmt.Fprintln(w, p.Footer)
}

func plain(s string) string {
	s = strings.ReplaceAll(s, "```\n", "\n")
	s = strings.ReplaceAll(s, "\n```", "")
	s = strings.ReplaceAll(s, "**", "")
	return strings.TrimSpace(s)
}
