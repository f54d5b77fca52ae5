// Package mirror orchestrates downloading the whole collection.
//
// A run fetches the index snapshot, parses it, and dispatches one job per
// matrix to a bounded pool of workers. Each worker skips matrices whose
// tarball already exists, otherwise creates the group directory and invokes
// the retrieval client. Failures are isolated per job: every job runs to
// completion and the aggregate Summary reports each outcome exactly once.
//
// # Layout
//
// A run produces the following tree under the output root:
//
//	root/ssstats.csv            index snapshot (refreshed every run)
//	root/<group>/<name>.tar.gz  one archive per matrix
//
// # Idempotency
//
// The skip check is file existence only, not completeness. A truncated
// transfer left behind by a crashed run satisfies the check and must be
// removed by hand before re-running.
package mirror
