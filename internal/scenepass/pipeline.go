package scenepass

import "github.com/sausagetaste/daltools-go/internal/scene"

// Optimize runs the fixed, non-commuting optimize_scene pipeline over s
// in place: reduce_indexed_vertices, remove_duplicate_materials,
// merge_redundant_mesh_actors, split_by_transparency, remove_empty_meshes,
// reduce_joints, apply_root_transform (§4.4).
func Optimize(s *scene.Scene, assetDir string) error {
	steps := []func(*scene.Scene) error{
		reduceIndexedVertices,
		removeDuplicateMaterials,
		mergeRedundantMeshActors,
		func(s *scene.Scene) error { return splitByTransparency(s, assetDir) },
		removeEmptyMeshes,
		reduceJoints,
		applyRootTransform,
	}
	for _, step := range steps {
		if err := step(s); err != nil {
			return err
		}
	}
	return nil
}
