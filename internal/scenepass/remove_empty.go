package scenepass

import "github.com/sausagetaste/daltools-go/internal/scene"

// removeEmptyMeshes drops meshes with no indices, removes render-pairs
// that named them, and erases any mesh actor left with no render-pairs
// and an identity transform — reparenting that actor's children onto its
// own parent (§4.4 step 5).
func removeEmptyMeshes(s *scene.Scene) error {
	keepMesh := make(map[string]bool, len(s.Meshes))
	survivors := make([]scene.Mesh, 0, len(s.Meshes))
	for _, m := range s.Meshes {
		if len(m.Indices) == 0 {
			continue
		}
		keepMesh[m.Name] = true
		survivors = append(survivors, m)
	}
	s.Meshes = survivors

	for ai := range s.MeshActors {
		pairs := s.MeshActors[ai].RenderPairs
		filtered := pairs[:0]
		for _, p := range pairs {
			if keepMesh[p.MeshName] {
				filtered = append(filtered, p)
			}
		}
		s.MeshActors[ai].RenderPairs = filtered
	}

	identity := scene.IdentityTransform()
	removedParent := make(map[string]string)
	remaining := make([]scene.MeshActor, 0, len(s.MeshActors))
	for _, a := range s.MeshActors {
		if len(a.RenderPairs) == 0 && a.Transform == identity {
			removedParent[a.Name] = a.ParentName
			continue
		}
		remaining = append(remaining, a)
	}
	s.MeshActors = remaining

	reparent := func(base *scene.ActorBase) {
		for i := 0; i < maxHierarchyDepth; i++ {
			newParent, wasRemoved := removedParent[base.ParentName]
			if !wasRemoved {
				return
			}
			base.ParentName = newParent
		}
	}
	for i := range s.MeshActors {
		reparent(&s.MeshActors[i].ActorBase)
	}
	for i := range s.DirLights {
		reparent(&s.DirLights[i].ActorBase)
	}
	for i := range s.PointLights {
		reparent(&s.PointLights[i].ActorBase)
	}
	for i := range s.Spotlights {
		reparent(&s.Spotlights[i].ActorBase)
	}

	return nil
}
