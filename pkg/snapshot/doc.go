// Package snapshot persists the result of render steps: the container's
// HTML and the host mutations the step applied.
//
// Two stores are provided. FileStore writes JSON files under a directory;
// S3Store writes the same documents to an S3 bucket (or any S3-compatible
// endpoint).
package snapshot
