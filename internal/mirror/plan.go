package mirror

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jamtrott/suitesparse-tools/internal/catalog"
)

// Job pairs one catalog matrix with its source URL and destination path.
// Jobs are ephemeral: planned immediately before dispatch, consumed by
// exactly one worker and then discarded.
type Job struct {
	Matrix *catalog.Matrix
	URL    string
	Dest   string
}

// PlanJob maps a matrix to its tarball destination under root and its
// Matrix Market source URL under the collection base URL.
func PlanJob(m *catalog.Matrix, baseURL, root string) Job {
	base := strings.TrimSuffix(baseURL, "/")
	return Job{
		Matrix: m,
		URL:    base + "/MM/" + m.Group + "/" + m.Name + ".tar.gz",
		Dest:   filepath.Join(root, m.Group, m.Name+".tar.gz"),
	}
}

// Satisfied reports whether the destination already holds a file. Any
// existing regular file counts, whatever its content; see the package
// comment for the partial-file caveat.
func (j Job) Satisfied() bool {
	info, err := os.Stat(j.Dest)
	return err == nil && info.Mode().IsRegular()
}
