package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"

	"github.com/AustinJGreen/bangdice/internal/dice"
	"github.com/AustinJGreen/bangdice/internal/engine"
	"github.com/AustinJGreen/bangdice/internal/simulate"
)

func sampleReport() Report {
	return Report{
		Initial: dice.State{Gattling: 2, Dynamite: 1, Other: 2},
		Rounds:  1,
		Policy:  engine.RerollAll{}.Name(),
		Result: engine.Result{
			Expectation: [3]float64{2.5, 1.25, 1.25},
			GattlingWin: 0.5,
			DynamiteWin: 0.125,
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		in      string
		w       Format
		wantErr bool
	}{
		{in: "", w: FormatText},
		{in: "text", w: FormatText},
		{in: " JSON ", w: FormatJSON},
		{in: "yaml", w: FormatYAML},
		{in: "xml", wantErr: true},
	} {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q) error = %v; want %v", tt.in, err, ErrUnknownFormat)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) returned error: %v", tt.in, err)
		}
		if got != tt.w {
			t.Errorf("ParseFormat(%q) = %q; want %q", tt.in, got, tt.w)
		}
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, sampleReport()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Initial roll: gattling=2,dynamite=1,other=2, 1 re-rolls",
		"Policy: Shoot for as many gattling as possible",
		"Expected outcome: {gattling: 2.500000, dynamite: 1.250000, other: 1.250000}",
		"P(achieving 3 gattling): 0.500000",
		"P(exploding to 3 dynamite): 0.125000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output is missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Simulated") {
		t.Errorf("text output has a simulation section without an estimate:\n%s", out)
	}
}

func TestWriteTextWithEstimate(t *testing.T) {
	r := sampleReport()
	r.Estimate = &simulate.Estimate{
		Trials: 100000,
		Result: engine.Result{Expectation: [3]float64{2.5, 1.25, 1.25}, GattlingWin: 0.49},
	}
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, r); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Simulated over 100,000 turns",
		"P(achieving 3 gattling): 0.490000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output is missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleReport()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	var got document
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	want := document{
		Initial: dice.State{Gattling: 2, Dynamite: 1, Other: 2},
		Rounds:  1,
		Policy:  "Shoot for as many gattling as possible",
		Exact: outcome{
			Expectation: map[string]float64{"gattling": 2.5, "dynamite": 1.25, "other": 1.25},
			GattlingWin: 0.5,
			DynamiteWin: 0.125,
		},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("json document does not match (-got, +want):\n%s", diff)
	}
	if strings.Contains(buf.String(), "estimate") {
		t.Errorf("json output has an estimate without a simulation:\n%s", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	r := sampleReport()
	r.Estimate = &simulate.Estimate{Trials: 10, Result: r.Result}
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, r); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	var got document
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if got.Estimate == nil || got.Estimate.Trials != 10 {
		t.Fatalf("yaml estimate = %+v; want 10 trials", got.Estimate)
	}
	if diff := cmp.Diff(got.Exact, *got.Estimate, cmpopts.IgnoreFields(outcome{}, "Trials")); diff != "" {
		t.Errorf("yaml estimate does not match exact (-exact, +estimate):\n%s", diff)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Format("xml"), sampleReport()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Write error = %v; want %v", err, ErrUnknownFormat)
	}
}
