package scenepass

import "github.com/sausagetaste/daltools-go/internal/scene"

// removeDuplicateMaterials keeps the first survivor of every
// physically-equal equivalence class, rewrites every render-pair's
// material-name through the replacement map, and drops the rest
// (§4.4 step 2).
func removeDuplicateMaterials(s *scene.Scene) error {
	replacement := make(map[string]string, len(s.Materials))
	survivors := make([]scene.Material, 0, len(s.Materials))

	for _, m := range s.Materials {
		found := false
		for _, sv := range survivors {
			if m.PhysicallyEqual(sv) {
				replacement[m.Name] = sv.Name
				found = true
				break
			}
		}
		if !found {
			replacement[m.Name] = m.Name
			survivors = append(survivors, m)
		}
	}
	s.Materials = survivors

	for ai := range s.MeshActors {
		pairs := s.MeshActors[ai].RenderPairs
		for pi := range pairs {
			if repl, ok := replacement[pairs[pi].MaterialName]; ok {
				pairs[pi].MaterialName = repl
			}
		}
	}
	return nil
}
