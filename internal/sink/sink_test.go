package sink

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	_ "gocloud.dev/blob/memblob"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "mem://")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	content := []byte("not really a tarball")
	local := filepath.Join(t.TempDir(), "west0067.tar.gz")
	if err := os.WriteFile(local, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Store(ctx, local, "HB/west0067.tar.gz"); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, err := s.bucket.ReadAll(ctx, "HB/west0067.tar.gz")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("stored content = %q, want %q", got, content)
	}
}

func TestStoreMissingLocalFile(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "mem://")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Store(ctx, filepath.Join(t.TempDir(), "absent.tar.gz"), "G/absent.tar.gz"); err == nil {
		t.Error("expected an error for a missing local file")
	}
}

func TestOpenBadURL(t *testing.T) {
	if _, err := Open(context.Background(), "bogus://nope"); err == nil {
		t.Error("expected an error for an unregistered scheme")
	}
}
