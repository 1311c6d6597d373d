// Package store contains the logic for materializing a dbt project on local disk.
// The Fetcher dispatches on the package type of the configuration to one of three strategies:
//
//   - artifactory: a streaming HTTP GET of a (gzipped) tarball that is unpacked into the download directory
//   - s3: a single object download from S3 (or any S3 compatible store) via the minio client
//   - github: a git clone into the download directory, optionally followed by a checkout of origin/<branch>
//
// Without a package type or URL nothing is fetched and the project is expected to be mounted at its path.
// Every strategy is attempted exactly once; failures are returned to the caller, which decides to stop the run.
package store
