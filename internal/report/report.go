// Package report renders evaluation results for people and for tools.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/AustinJGreen/bangdice/internal/dice"
	"github.com/AustinJGreen/bangdice/internal/engine"
	"github.com/AustinJGreen/bangdice/internal/simulate"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat indicates an output format that is not supported.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a name such as "json" to its Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%q (want text, json or yaml): %w", s, ErrUnknownFormat)
	}
}

// Report is everything printed for one run.
type Report struct {
	Initial  dice.State         `json:"initial" yaml:"initial"`
	Rounds   int                `json:"rounds" yaml:"rounds"`
	Policy   string             `json:"policy" yaml:"policy"`
	Result   engine.Result      `json:"result" yaml:"result"`
	Estimate *simulate.Estimate `json:"estimate,omitempty" yaml:"estimate,omitempty"`
}

// document is the machine-readable layout of a Report. The expectation
// vector is keyed by face name.
type document struct {
	Initial  dice.State `json:"initial" yaml:"initial"`
	Rounds   int        `json:"rounds" yaml:"rounds"`
	Policy   string     `json:"policy" yaml:"policy"`
	Exact    outcome    `json:"exact" yaml:"exact"`
	Estimate *outcome   `json:"estimate,omitempty" yaml:"estimate,omitempty"`
}

type outcome struct {
	Trials      int                `json:"trials,omitempty" yaml:"trials,omitempty"`
	Expectation map[string]float64 `json:"expectation" yaml:"expectation"`
	GattlingWin float64            `json:"gattling_win" yaml:"gattling_win"`
	DynamiteWin float64            `json:"dynamite_win" yaml:"dynamite_win"`
}

func newOutcome(r engine.Result, trials int) outcome {
	return outcome{
		Trials:      trials,
		Expectation: r.ExpectationByFace(),
		GattlingWin: r.GattlingWin,
		DynamiteWin: r.DynamiteWin,
	}
}

func (r Report) document() document {
	doc := document{
		Initial: r.Initial,
		Rounds:  r.Rounds,
		Policy:  r.Policy,
		Exact:   newOutcome(r.Result, 0),
	}
	if r.Estimate != nil {
		est := newOutcome(r.Estimate.Result, r.Estimate.Trials)
		doc.Estimate = &est
	}
	return doc
}

// Write renders r to w in format f.
func Write(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatText, "":
		return writeText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.document()); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.document()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

func writeText(w io.Writer, r Report) error {
	// Colors only when w is a terminal.
	renderer := lipgloss.NewRenderer(w, termenv.WithColorCache(true))
	heading := renderer.NewStyle().Bold(true)
	faint := renderer.NewStyle().Faint(true)
	p := message.NewPrinter(language.English)

	var b strings.Builder
	b.WriteString(heading.Render(fmt.Sprintf("Initial roll: %s, %d re-rolls", r.Initial, r.Rounds)))
	b.WriteString("\n")
	b.WriteString(faint.Render("Policy: " + r.Policy))
	b.WriteString("\n")
	writeResult(&b, p, r.Result)
	if r.Estimate != nil {
		b.WriteString("\n")
		b.WriteString(heading.Render(p.Sprintf("Simulated over %d turns", r.Estimate.Trials)))
		b.WriteString("\n")
		writeResult(&b, p, r.Estimate.Result)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeResult(b *strings.Builder, p *message.Printer, r engine.Result) {
	faces := make([]string, 0, dice.NumFaces)
	for _, f := range dice.Faces() {
		faces = append(faces, p.Sprintf("%s: %.6f", f, r.Expected(f)))
	}
	b.WriteString("Expected outcome: {" + strings.Join(faces, ", ") + "}\n")
	b.WriteString(p.Sprintf("P(achieving 3 gattling): %.6f\n", r.GattlingWin))
	b.WriteString(p.Sprintf("P(exploding to 3 dynamite): %.6f\n", r.DynamiteWin))
}
