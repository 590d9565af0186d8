package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRunDefaults(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run(context.Background(), nil, &out, &errOut); err != nil {
		t.Fatalf("run returned error: %v\n%s", err, errOut.String())
	}
	for _, want := range []string{
		"Initial roll: gattling=0,dynamite=0,other=5, 3 re-rolls",
		"Expected outcome: {gattling: 1.690979, dynamite: 1.690979, other: 1.618042}",
		"P(achieving 3 gattling): 0.238052",
		"P(exploding to 3 dynamite): 0.238052",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output is missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunFlags(t *testing.T) {
	var out, errOut bytes.Buffer
	args := []string{"-g", "2", "-d", "1", "-o", "2", "-r", "0"}
	if err := run(context.Background(), args, &out, &errOut); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if want := "Expected outcome: {gattling: 2.000000, dynamite: 1.000000, other: 2.000000}"; !strings.Contains(out.String(), want) {
		t.Errorf("output is missing %q:\n%s", want, out.String())
	}
}

func TestRunBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"-o", "-1"},
		{"-rolls", "-2"},
		{"-format", "xml"},
		{"-no-such-flag"},
	} {
		var out, errOut bytes.Buffer
		if err := run(context.Background(), args, &out, &errOut); err == nil {
			t.Errorf("run(%v) succeeded; want error", args)
		}
	}
}
