// Package vfs implements the mounted virtual filesystem (§4.8): an
// ordered list of prefix-to-directory mounts, with bundle-aware reads
// that fall back to opening a DALBUNDLE archive when a plain file read
// fails.
package vfs

import "errors"

var (
	ErrNoMountForPath = errors.New("vfs: no mount point covers path")
	ErrNotFound       = errors.New("vfs: file not found")
)
