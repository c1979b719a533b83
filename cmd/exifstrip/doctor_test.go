package main

import (
	"path/filepath"
	"testing"
)

func TestDoctorReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath, "")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "== Checks ==")
	requireContains(t, out, "[OK] version 12.76")
	requireContains(t, out, env.imageDir+" (read/write ok)")
}

func TestDoctorFailsWithoutExiftool(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env.configPath, env.imageDir, filepath.Join(env.baseDir, "missing"))

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected doctor to fail when exiftool is missing")
	}
	requireContains(t, out, "[ERROR] not found")
}
