// Package resource implements the asynchronous-feeling, poll-driven
// resource manager (§4.9): each path tracks its own
// Absent → Loading → Ready|NotSupported|Error state, advancing by
// exactly one step per Request call so a caller can interleave many
// in-flight loads without blocking on any one of them.
package resource

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/sausagetaste/daltools-go/internal/dmd"
	"github.com/sausagetaste/daltools-go/internal/imgsrc"
	"github.com/sausagetaste/daltools-go/internal/model"
	"github.com/sausagetaste/daltools-go/internal/vfs"
)

// State is a resource item's position in its load state machine.
type State int

const (
	StateAbsent State = iota
	StateLoading
	StateReady
	StateNotSupported
	StateError
)

// Kind classifies a resource path by its decoded payload type.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindModel
)

func deduceKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ktx", ".png", ".jpg", ".jpeg", ".bmp", ".tga":
		return KindImage
	case ".dmd":
		return KindModel
	default:
		return KindUnknown
	}
}

type item struct {
	state State
	kind  Kind
	raw   []byte
	img   imgsrc.Image
	model *model.Model
	err   error
}

// Manager is a path-keyed registry of in-flight and completed resource
// loads backed by a Filesystem.
type Manager struct {
	fsys *vfs.Filesystem

	mu    sync.Mutex
	items map[string]*item
}

// New returns a Manager reading through fsys.
func New(fsys *vfs.Filesystem) *Manager {
	return &Manager{fsys: fsys, items: make(map[string]*item)}
}

func (m *Manager) getOrCreate(path string) *item {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[path]
	if !ok {
		it = &item{state: StateAbsent}
		m.items[path] = it
	}
	return it
}

// Request advances path's load by one step and returns its resulting
// state: Absent reads the raw bytes (→Loading or →Error), Loading
// parses by extension (→Ready, →NotSupported, or →Error), and any
// later call is a no-op that just returns the settled state.
func (m *Manager) Request(path string) State {
	it := m.getOrCreate(path)

	switch it.state {
	case StateAbsent:
		data, err := m.fsys.ReadFile(path)
		if err != nil || len(data) == 0 {
			it.state = StateError
			it.err = err
			return it.state
		}
		it.raw = data
		it.state = StateLoading
		return it.state

	case StateLoading:
		it.kind = deduceKind(path)
		switch it.kind {
		case KindImage:
			img, err := imgsrc.Decode(path, it.raw)
			if err != nil {
				it.state = StateError
				it.err = err
				return it.state
			}
			it.img = img
			it.state = StateReady
		case KindModel:
			mdl, err := dmd.Decode(it.raw)
			if err != nil {
				it.state = StateError
				it.err = err
				return it.state
			}
			it.model = mdl
			it.state = StateReady
		default:
			it.state = StateNotSupported
		}
		return it.state

	default:
		return it.state
	}
}

// QueryKind returns the resource kind deduced for an already-requested
// path, or KindUnknown if the path was never requested.
func (m *Manager) QueryKind(path string) Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	if it, ok := m.items[path]; ok {
		return it.kind
	}
	return KindUnknown
}

// Err returns the error recorded for a path in StateError, if any.
func (m *Manager) Err(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if it, ok := m.items[path]; ok {
		return it.err
	}
	return nil
}

// GetImage returns the decoded image for a Ready image resource.
func (m *Manager) GetImage(path string) (imgsrc.Image, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[path]
	if !ok || it.state != StateReady || it.kind != KindImage {
		return nil, false
	}
	return it.img, true
}

// GetModel returns the decoded model for a Ready DMD resource.
func (m *Manager) GetModel(path string) (*model.Model, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[path]
	if !ok || it.state != StateReady || it.kind != KindModel {
		return nil, false
	}
	return it.model, true
}
