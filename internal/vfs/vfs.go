package vfs

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sausagetaste/daltools-go/internal/bundle"
)

// Walker receives callbacks while Filesystem.Walk descends a tree.
// OnFolder may return false to stop descending into that folder.
type Walker interface {
	OnFolder(p string, depth int) bool
	OnFile(p string, depth int)
	OnBundle(p string, depth int)
}

type mount struct {
	prefix string // virtual path prefix, e.g. "/assets"
	root   string // real directory this prefix maps to
}

// Filesystem is an ordered union of mount points (§9's "first-registered
// mount point wins, later mounts only fill gaps" rule) plus a cache of
// opened bundle repositories keyed by archive path.
type Filesystem struct {
	mounts []mount

	mu      sync.Mutex
	bundles map[string]*bundle.Repository
}

// New returns an empty Filesystem with no mounts.
func New() *Filesystem {
	return &Filesystem{bundles: make(map[string]*bundle.Repository)}
}

// AddMount registers prefix → root. Earlier mounts take priority when
// two mounts could resolve the same virtual path.
func (fsys *Filesystem) AddMount(prefix, root string) {
	fsys.mounts = append(fsys.mounts, mount{prefix: cleanPrefix(prefix), root: root})
}

func cleanPrefix(p string) string {
	p = path.Clean("/" + p)
	return p
}

// toRaw resolves a virtual path to a real filesystem path under m, or
// ("", false) if m doesn't cover it.
func (m mount) toRaw(virtual string) (string, bool) {
	v := path.Clean("/" + virtual)
	if v != m.prefix && !strings.HasPrefix(v, m.prefix+"/") {
		return "", false
	}
	rel := strings.TrimPrefix(v, m.prefix)
	rel = strings.TrimPrefix(rel, "/")
	return filepath.Join(m.root, filepath.FromSlash(rel)), true
}

// toVirtual is toRaw's inverse, used when listing a mount's directory
// entries back out as virtual paths.
func (m mount) toVirtual(raw string) string {
	rel, err := filepath.Rel(m.root, raw)
	if err != nil {
		return raw
	}
	return path.Join(m.prefix, filepath.ToSlash(rel))
}

// IsFile reports whether path resolves to a regular file in any mount.
func (fsys *Filesystem) IsFile(p string) bool {
	for _, m := range fsys.mounts {
		raw, ok := m.toRaw(p)
		if !ok {
			continue
		}
		if info, err := os.Stat(raw); err == nil && info.Mode().IsRegular() {
			return true
		}
	}
	return false
}

// ListFiles returns every regular file directly under p across all
// mounts that cover it.
func (fsys *Filesystem) ListFiles(p string) []string {
	var out []string
	for _, m := range fsys.mounts {
		raw, ok := m.toRaw(p)
		if !ok {
			continue
		}
		entries, err := os.ReadDir(raw)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				out = append(out, m.toVirtual(filepath.Join(raw, e.Name())))
			}
		}
	}
	return out
}

// ListFolders returns every subdirectory directly under p across all
// mounts that cover it.
func (fsys *Filesystem) ListFolders(p string) []string {
	var out []string
	for _, m := range fsys.mounts {
		raw, ok := m.toRaw(p)
		if !ok {
			continue
		}
		entries, err := os.ReadDir(raw)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				out = append(out, m.toVirtual(filepath.Join(raw, e.Name())))
			}
		}
	}
	return out
}

// openBundle opens and caches the bundle archive at rawPath.
func (fsys *Filesystem) openBundle(rawPath string) (*bundle.Repository, error) {
	fsys.mu.Lock()
	defer fsys.mu.Unlock()

	if repo, ok := fsys.bundles[rawPath]; ok {
		return repo, nil
	}

	data, err := os.ReadFile(rawPath)
	if err != nil {
		return nil, err
	}
	repo, err := bundle.Open(data)
	if err != nil {
		return nil, err
	}
	fsys.bundles[rawPath] = repo
	return repo, nil
}

// ReadFile reads the file at a virtual path. Mounts are tried in
// priority order; for each, a plain read is tried first, and if it
// fails each ancestor of the path (starting at the leaf's parent) is
// tried as a bundle archive path, with the remaining suffix looked up
// as an item name inside it (§4.8's bundle-aware read fallback).
func (fsys *Filesystem) ReadFile(p string) ([]byte, error) {
	for _, m := range fsys.mounts {
		raw, ok := m.toRaw(p)
		if !ok {
			continue
		}
		if data, err := os.ReadFile(raw); err == nil {
			return data, nil
		}

		if data, err := fsys.readFromBundle(raw); err == nil {
			return data, nil
		}
	}
	return nil, ErrNotFound
}

// readFromBundle walks raw's ancestor directories looking for a
// regular file that parses as a bundle archive, then looks up the
// remaining path suffix as an item name within it.
func (fsys *Filesystem) readFromBundle(raw string) ([]byte, error) {
	dir := filepath.Dir(raw)
	suffix := filepath.Base(raw)

	for {
		info, err := os.Stat(dir)
		if err == nil && info.Mode().IsRegular() {
			repo, err := fsys.openBundle(dir)
			if err == nil {
				if data, err := repo.Lookup(filepath.ToSlash(suffix)); err == nil {
					return data, nil
				}
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		suffix = filepath.Join(filepath.Base(dir), suffix)
		dir = parent
	}
	return nil, ErrNotFound
}

// Walk descends from root across every mount, invoking visitor in
// folder → files → subfolders order per directory (§4.8).
func (fsys *Filesystem) Walk(root string, visitor Walker) {
	fsys.walk(root, visitor, 0)
}

func (fsys *Filesystem) walk(p string, visitor Walker, depth int) {
	if !visitor.OnFolder(p, depth) {
		return
	}

	for _, f := range fsys.ListFiles(p) {
		raw, ok := fsys.rawPath(f)
		if ok && fsys.isBundleFile(raw) {
			visitor.OnBundle(f, depth+1)
			fsys.walkBundleItems(raw, f, visitor, depth+2)
		} else {
			visitor.OnFile(f, depth+1)
		}
	}

	for _, d := range fsys.ListFolders(p) {
		fsys.walk(d, visitor, depth+1)
	}
}

// walkBundleItems invokes visitor.OnFile for every item in the bundle
// archive at raw, named as virtualBundlePath/<item name>, matching
// walk_bundle's "enter a bundle via its item list rather than descend
// it as a directory" rule (§4.8).
func (fsys *Filesystem) walkBundleItems(raw, virtualBundlePath string, visitor Walker, depth int) {
	repo, err := fsys.openBundle(raw)
	if err != nil {
		return
	}
	for _, name := range repo.Names() {
		visitor.OnFile(path.Join(virtualBundlePath, name), depth)
	}
}

// rawPath resolves a virtual path to the real file backing it, trying
// every covering mount in priority order and skipping one whose root
// doesn't actually contain the file (mirroring IsFile's mount scan).
func (fsys *Filesystem) rawPath(virtualPath string) (string, bool) {
	for _, m := range fsys.mounts {
		raw, ok := m.toRaw(virtualPath)
		if !ok {
			continue
		}
		if info, err := os.Stat(raw); err == nil && info.Mode().IsRegular() {
			return raw, true
		}
	}
	return "", false
}

func (fsys *Filesystem) isBundleFile(raw string) bool {
	f, err := os.Open(raw)
	if err != nil {
		return false
	}
	defer f.Close()

	var magic [8]byte
	if _, err := f.Read(magic[:]); err != nil {
		return false
	}
	return magic == bundle.Magic
}
