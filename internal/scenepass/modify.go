package scenepass

import "github.com/sausagetaste/daltools-go/internal/scene"

// FlipUVVertically flips every mesh vertex's V coordinate (v = 1-v),
// run once before Optimize when the authoring tool's V axis is
// inverted relative to the target renderer.
func FlipUVVertically(s *scene.Scene) {
	for mi := range s.Meshes {
		verts := s.Meshes[mi].Vertices
		for vi := range verts {
			verts[vi].UV[1] = 1 - verts[vi].UV[1]
		}
	}
}

// ClearCollectionInfo drops every actor's authoring-tool collection
// tags, which carry no meaning once a scene is compiled to a Model.
func ClearCollectionInfo(s *scene.Scene) {
	for i := range s.MeshActors {
		s.MeshActors[i].Collections = nil
	}
	for i := range s.DirLights {
		s.DirLights[i].Collections = nil
	}
	for i := range s.PointLights {
		s.PointLights[i].Collections = nil
	}
	for i := range s.Spotlights {
		s.Spotlights[i].Collections = nil
	}
}
