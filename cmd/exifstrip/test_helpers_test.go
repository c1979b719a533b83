package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"exifstrip/internal/testsupport"
)

// stubBody answers the argument vectors a run issues using shell builtins
// only, since PATH is isolated. Files whose first line mentions EXIF report
// tags; stripping rewrites them to "clean".
const stubBody = `for last; do :; done
case "$1" in
-ver) echo 12.76 ;;
-s)
  case "$4" in
  -FileType) echo JPEG ;;
  -EXIF:all)
    read -r line < "$last"
    case "$line" in *EXIF*) echo Canon ;; esac ;;
  esac ;;
-overwrite_original) printf clean > "$last" ;;
esac`

type cliTestEnv struct {
	baseDir    string
	imageDir   string
	configPath string
	exiftool   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	testsupport.IsolatePath(t)

	imageDir := filepath.Join(base, "images")
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		t.Fatalf("mkdir images: %v", err)
	}

	env := &cliTestEnv{
		baseDir:    base,
		imageDir:   imageDir,
		configPath: filepath.Join(base, "exifstrip.toml"),
		exiftool:   testsupport.StubExiftool(t, filepath.Join(base, "bin"), "exiftool", stubBody),
	}
	writeTestConfig(t, env.configPath, env.imageDir, env.exiftool)
	return env
}

func writeTestConfig(t *testing.T, path, workDir, exiftool string) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nwork_dir = %q\n\n[exiftool]\npath = %q\n\n[verify]\nenabled = false\n\n[logging]\nlevel = \"error\"\n",
		workDir,
		exiftool,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
