package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jamtrott/suitesparse-tools/internal/testutils"
)

func TestRunDispatch(t *testing.T) {
	if got := run(nil); got != ExitInvalidArgs {
		t.Errorf("run with no args = %d, want %d", got, ExitInvalidArgs)
	}
	if got := run([]string{"frobnicate"}); got != ExitInvalidArgs {
		t.Errorf("run with unknown command = %d, want %d", got, ExitInvalidArgs)
	}
	if got := run([]string{"help"}); got != ExitSuccess {
		t.Errorf("run help = %d, want %d", got, ExitSuccess)
	}
}

// fakeWget imitates enough of wget for an end-to-end mirror run: it answers
// the version probe and writes a file named after the URL into the -P
// directory. The index URL yields a two-matrix snapshot.
const fakeWget = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "GNU Wget 1.21.3 built on linux-gnu."
  exit 0
fi
dest=""
url=""
while [ $# -gt 0 ]; do
  case "$1" in
    -P) dest="$2"; shift 2 ;;
    *) url="$1"; shift ;;
  esac
done
name=$(basename "$url")
if [ "$name" = "ssstats.csv" ]; then
  printf '2\n2024-01-01\nA,m1,2,2,4,1,0,0,0,0,0,test,4\nB,m2,3,3,9,1,0,0,0,0,0,test,9\n' > "$dest/$name"
else
  echo "tarball" > "$dest/$name"
fi
`

func TestMirrorEndToEnd(t *testing.T) {
	toolDir := t.TempDir()
	testutils.FakeTool(t, toolDir, "wget", fakeWget)
	t.Setenv("PATH", toolDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	root := filepath.Join(t.TempDir(), "mirror")

	if got := runMirror([]string{"-out", root, "-j", "2"}); got != ExitSuccess {
		t.Fatalf("mirror = %d, want %d", got, ExitSuccess)
	}

	for _, p := range []string{
		filepath.Join(root, "ssstats.csv"),
		filepath.Join(root, "A", "m1.tar.gz"),
		filepath.Join(root, "B", "m2.tar.gz"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing expected file %s: %v", p, err)
		}
	}

	// A second run only refreshes the index; the tarballs are skipped.
	if got := runMirror([]string{"-out", root}); got != ExitSuccess {
		t.Fatalf("second mirror run = %d, want %d", got, ExitSuccess)
	}
}

func TestMirrorInvalidConfig(t *testing.T) {
	if got := runMirror([]string{"-config", "/nonexistent/config.yaml"}); got != ExitInvalidArgs {
		t.Errorf("mirror with missing config = %d, want %d", got, ExitInvalidArgs)
	}
	if got := runMirror([]string{"-j", "-1", "-out", t.TempDir()}); got != ExitInvalidArgs {
		t.Errorf("mirror with negative jobs = %d, want %d", got, ExitInvalidArgs)
	}
}

func TestSpy(t *testing.T) {
	dir := t.TempDir()
	mtx := filepath.Join(dir, "toy.mtx")
	content := "%%MatrixMarket matrix coordinate real general\n3 3 2\n1 1 1.0\n3 3 2.0\n"
	if err := os.WriteFile(mtx, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "toy.png")
	if got := runSpy([]string{"-output", out, mtx}); got != ExitSuccess {
		t.Fatalf("spy = %d, want %d", got, ExitSuccess)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 3 {
		t.Errorf("image bounds = %v, want 3x3", img.Bounds())
	}
}

func TestSpyErrors(t *testing.T) {
	if got := runSpy([]string{}); got != ExitInvalidArgs {
		t.Errorf("spy with no file = %d, want %d", got, ExitInvalidArgs)
	}
	if got := runSpy([]string{"/nonexistent/file.mtx"}); got != ExitGeneralError {
		t.Errorf("spy with missing file = %d, want %d", got, ExitGeneralError)
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.mtx")
	if err := os.WriteFile(bad, []byte("% comment only\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := runSpy([]string{"-output", filepath.Join(dir, "bad.png"), bad}); got != ExitParseError {
		t.Errorf("spy with malformed file = %d, want %d", got, ExitParseError)
	}
}
