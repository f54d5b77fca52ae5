// Package testutils provides shared test infrastructure.
package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FakeTool writes an executable shell script into dir and returns its path.
// Tests use it to stand in for the wget binary.
func FakeTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return path
}

// Index builds an index snapshot with the given header values and records.
func Index(count int, date string, records ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%s\n", count, date)
	for _, r := range records {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	return b.String()
}

// Record builds one 13-field index record with placeholder statistics.
func Record(group, name string) string {
	return fmt.Sprintf("%s,%s,10,10,20,1,0,0,0,0,0,test problem,20", group, name)
}
