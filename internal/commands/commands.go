// internal/commands/commands.go
//
// Transport-agnostic command layer.
//
// Each command takes plain arguments, calls the lookup core, and returns a
// Panel: a titled, coloured block with optional fields and a footer. Adapters
// (HTTP, CLI) decide how to render a Panel; commands never know who invoked
// them or how the result is shown.
//
// Commands:
//   - Check:    word validity in a version (valid / not valid / rejected).
//   - Coverage: definition coverage of a version.
//   - Status:   startup counters ("for N words").
//   - Versions: selectable versions with their display strings.

package commands

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/silvncr/watchword-bot/internal/errs"
	"github.com/silvncr/watchword-bot/internal/lookup"
)

// BotVersion is shown in every panel footer.
const BotVersion = "0.3.2"

// Panel colours.
const (
	ColorNeutral = 0xFFFFFF
	ColorValid   = 0x00FF00
	ColorInvalid = 0xFF0000
)

// Kind tells adapters how to style a Panel.
type Kind string

const (
	KindValid    Kind = "valid"
	KindNotValid Kind = "not_valid"
	KindRejected Kind = "rejected"
	KindInfo     Kind = "info"
)

// Field is one named section of a Panel.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Panel is the rendered result of a command.
type Panel struct {
	Kind        Kind    `json:"kind"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Color       int     `json:"color"`
	Fields      []Field `json:"fields,omitempty"`
	Footer      string  `json:"footer"`
}

func newPanel(kind Kind, title, description string, color int) Panel {
	return Panel{
		Kind:        kind,
		Title:       title,
		Description: description,
		Color:       color,
		Footer:      "v" + BotVersion,
	}
}

// Checker is the part of the lookup core the commands need.
type Checker interface {
	Check(raw, version string) (lookup.Result, error)
	Coverage(version string) (lookup.CoverageStats, error)
	Stats() lookup.Stats
	Versions() []lookup.VersionInfo
}

// Commands binds the command set to a lookup core.
type Commands struct {
	core Checker
}

// New returns the command set for core.
func New(core Checker) *Commands {
	return &Commands{core: core}
}

// Check runs a word check. A rejected word is not an error: it yields a
// KindRejected panel alongside the lookup result. Other errors (unknown
// version) are returned as-is.
func (c *Commands) Check(word, version string) (Panel, lookup.Result, error) {
	res, err := c.core.Check(word, version)
	if err != nil {
		if inv, ok := lookup.AsRejected(err); ok {
			return RejectedPanel(inv), res, nil
		}
		return Panel{}, res, err
	}
	if res.Outcome != lookup.Valid {
		return newPanel(KindNotValid,
			":x: "+res.Word,
			"This is not a valid word in Watchword "+res.VersionString,
			ColorInvalid,
		), res, nil
	}

	p := newPanel(KindValid,
		":white_check_mark: "+res.Word,
		"This is a valid word in Watchword "+res.VersionString,
		ColorValid,
	)
	if res.HasDefinition {
		p.Fields = append(p.Fields, Field{Name: "Definition", Value: codeBlock(res.Definition)})
	}
	p.Fields = append(p.Fields, Field{Name: "Flags", Value: res.FlagString()})
	return p, res, nil
}

// RejectedPanel renders an input rejection.
func RejectedPanel(inv *errs.InvalidInputError) Panel {
	word := inv.Word
	if word == "" {
		word = "(empty)"
	}
	return newPanel(KindRejected,
		fmt.Sprintf(":warning: Invalid input: `%s`", word),
		"> "+inv.Reason,
		ColorNeutral,
	)
}

// Coverage reports definition coverage for version.
func (c *Commands) Coverage(version string) (Panel, error) {
	st, err := c.core.Coverage(version)
	if err != nil {
		return Panel{}, err
	}
	body := strings.Join([]string{
		"words: " + Thousands(st.Words),
		"definitions: " + Thousands(st.Definitions),
		fmt.Sprintf("coverage: %.2f%%", st.Percent),
	}, "\n")
	return newPanel(KindInfo,
		":bar_chart: Coverage",
		"**"+st.VersionString+"**"+codeBlock(body),
		ColorNeutral,
	), nil
}

// Status reports the startup counters.
func (c *Commands) Status() Panel {
	st := c.core.Stats()
	p := newPanel(KindInfo, ":book: Watchword Dictionary", Presence(st), ColorNeutral)
	p.Fields = []Field{
		{Name: "Words", Value: Thousands(st.TotalWords), Inline: true},
		{Name: "Definitions", Value: Thousands(st.Definitions), Inline: true},
		{Name: "Definition coverage", Value: fmt.Sprintf("%.2f%%", st.DefinitionCoverage*100), Inline: true},
	}
	return p
}

// Versions lists the selectable versions; the default is marked.
func (c *Commands) Versions() Panel {
	var lines []string
	for _, v := range c.core.Versions() {
		line := v.Display
		if v.Default {
			line += " (default)"
		}
		if v.Words == 0 {
			line += " [no wordlist]"
		}
		lines = append(lines, line)
	}
	return newPanel(KindInfo, ":scroll: Versions", codeBlock(strings.Join(lines, "\n")), ColorNeutral)
}

// Presence is the status line shown next to the bot: "for N words".
func Presence(st lookup.Stats) string {
	return "for " + Thousands(st.TotalWords) + " words"
}

// Thousands formats n with comma separators.
func Thousands(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

func codeBlock(s string) string {
	return "```\n" + s + "\n```"
}
