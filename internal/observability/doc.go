// Package observability builds the process logger and the per-request log line.
//
// Logs go to stdout in JSON or console form, optionally teed to a rotated file.
// Request entries carry the chi request ID so they can be correlated with
// the auth and policy decisions logged further down the pipeline.
package observability
