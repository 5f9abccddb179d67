// Package github implements the driven.FileStore port over the GitHub
// contents API. Documents and image blobs live as files in a single
// repository; every write is a commit, and the file's blob SHA serves
// as the version token for conditional updates.
//
// The adapter authenticates with a personal access token, throttles
// requests proactively and maps API failures onto the domain error
// taxonomy so callers can distinguish "absent" from "forbidden" and
// "stale token" from "transport failure".
package github
