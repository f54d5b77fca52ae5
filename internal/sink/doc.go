// Package sink replicates fetched tarballs into object storage.
//
// The sink is optional plumbing behind the mirror command's -bucket flag:
// after a matrix tarball lands on local disk, it is copied to
// <group>/<name>.tar.gz in the bucket. Buckets are addressed by gocloud
// URL (s3://, gs://, mem://); the CLI registers the s3 and gcs drivers.
package sink
