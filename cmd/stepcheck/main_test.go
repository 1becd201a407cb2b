package main

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func runCmd(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestResolve(t *testing.T) {
	code, out, errOut := runCmd("resolve", "-scene", "testdata/scene.yaml", "-groups", "testdata/groups.yaml", "Rolling")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{"frame", "wheel", "wheel_1"}
	for i, w := range want {
		if i >= len(lines) || lines[i] != w {
			t.Fatalf("output = %q, want members %v first", out, want)
		}
	}
	if strings.Contains(out, "wheelnut") {
		t.Error("wheelnut must not match the wheel group")
	}
}

func TestGroupsReportsDiagnostics(t *testing.T) {
	code, out, _ := runCmd("groups", "-scene", "testdata/scene.yaml", "-groups", "testdata/groups.yaml")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"Rolling", "composite", "empty-group: seat", "cycle: Loop -> Loop"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSteps(t *testing.T) {
	code, out, errOut := runCmd("steps", "-scene", "testdata/scene.yaml", "-groups", "testdata/groups.yaml", "-steps", "testdata/steps.yaml")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "Fit wheels") || !strings.Contains(out, "hide") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !regexp.MustCompile(`(?m)^Rolling\s+3$`).MatchString(out) {
		t.Errorf("group summary should count Rolling's meshes:\n%s", out)
	}
}

func TestStepsFailsOnEmptyStep(t *testing.T) {
	code, _, errOut := runCmd("steps", "-scene", "testdata/scene.yaml", "-groups", "testdata/groups.yaml", "-steps", "testdata/steps_empty.yaml")
	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut, "seat") {
		t.Errorf("stderr should name the empty step: %q", errOut)
	}
}

func TestShippedAssets(t *testing.T) {
	code, out, errOut := runCmd("steps", "-scene", "../../assets/scene.yaml", "-groups", "../../assets/groups.yaml", "-steps", "../../assets/steps.yaml")
	if code != 0 {
		t.Fatalf("exit %d: %s\n%s", code, errOut, out)
	}
	if strings.Contains(out, "Diagnostics") {
		t.Errorf("shipped assets should resolve cleanly:\n%s", out)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"explode"}},
		{"missing scene", []string{"groups"}},
		{"missing name", []string{"resolve", "-scene", "testdata/scene.yaml"}},
		{"missing steps", []string{"steps", "-scene", "testdata/scene.yaml"}},
		{"bad scene", []string{"groups", "-scene", "testdata/nope.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runCmd(tt.args...); code != 1 {
				t.Errorf("exit %d, want 1", code)
			}
		})
	}

	if code, out, _ := runCmd("help"); code != 0 || !strings.Contains(out, "Usage") {
		t.Errorf("help exit %d", code)
	}
}
