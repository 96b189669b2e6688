package scenepass

import "github.com/sausagetaste/daltools-go/internal/scene"

// actorBaseEqual compares the fields merge_redundant_mesh_actors folds on:
// parent-name, collection tags (order-sensitive, matching how the
// authoring importer emits them), transform, and hidden flag.
func actorBaseEqual(a, b scene.ActorBase) bool {
	if a.ParentName != b.ParentName || a.Transform != b.Transform || a.Hidden != b.Hidden {
		return false
	}
	if len(a.Collections) != len(b.Collections) {
		return false
	}
	for i := range a.Collections {
		if a.Collections[i] != b.Collections[i] {
			return false
		}
	}
	return true
}

// mergeRedundantMeshActors folds each actor's render-pairs into the
// first earlier actor whose base fields match exactly, leaving the
// folded-from actor in place with an empty render-pair list (§4.4 step 3).
func mergeRedundantMeshActors(s *scene.Scene) error {
	for i := 1; i < len(s.MeshActors); i++ {
		for j := 0; j < i; j++ {
			if actorBaseEqual(s.MeshActors[i].ActorBase, s.MeshActors[j].ActorBase) {
				s.MeshActors[j].RenderPairs = append(s.MeshActors[j].RenderPairs, s.MeshActors[i].RenderPairs...)
				s.MeshActors[i].RenderPairs = nil
				break
			}
		}
	}
	return nil
}
