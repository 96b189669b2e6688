// Package scenepass implements the optimize_scene pipeline (§4.4): seven
// fixed-order, non-commuting passes over a Scene, plus the scene→model
// conversion step (§4.5).
package scenepass

import "errors"

var (
	// ErrMultipleSkeletons is returned by ToModel when a scene references
	// more than one distinct skeleton across its meshes — at most one is
	// supported per §4.5.
	ErrMultipleSkeletons = errors.New("scenepass: scene references more than one skeleton")
	// ErrNameNotFound is returned when a render-pair names a mesh or
	// material absent from the scene.
	ErrNameNotFound = errors.New("scenepass: name not found")
	// ErrInvariantViolation guards internal consistency checks (index
	// bounds, cycle depth) that should never fire on a well-formed scene.
	ErrInvariantViolation = errors.New("scenepass: invariant violation")
)

// maxHierarchyDepth bounds the actor-parent walk in makeHierarchyTransform
// so a corrupt/cyclic parent chain fails loudly instead of looping
// forever, per the §9 REDESIGN FLAG on scene-hierarchy name references.
const maxHierarchyDepth = 256
