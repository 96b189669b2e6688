package scenepass

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/sausagetaste/daltools-go/internal/imgsrc"
	"github.com/sausagetaste/daltools-go/internal/scene"
)

const transpSuffix = "#transp"
const opaqueAlphaThreshold = 254

// splitByTransparency duplicates every material into an opaque and a
// `#transp` variant, then walks every (mesh, material) render-pair and
// splits each mesh's triangles into an opaque and a transparent half by
// sampling the albedo texture's alpha channel inside each triangle's
// pixel-space bounding box (§4.4 step 4).
func splitByTransparency(s *scene.Scene, assetDir string) error {
	expanded := make([]scene.Material, 0, 2*len(s.Materials))
	for _, m := range s.Materials {
		m.Transparency = false
		transp := m
		transp.Name = m.Name + transpSuffix
		transp.Transparency = true
		expanded = append(expanded, m, transp)
	}
	sort.Slice(expanded, func(i, j int) bool { return expanded[i].Name < expanded[j].Name })
	s.Materials = expanded

	materialByName := make(map[string]scene.Material, len(s.Materials))
	for _, m := range s.Materials {
		materialByName[m.Name] = m
	}

	meshByName := make(map[string]*scene.Mesh, len(s.Meshes))
	for mi := range s.Meshes {
		meshByName[s.Meshes[mi].Name] = &s.Meshes[mi]
	}

	newMeshes := make(map[string]scene.Mesh)

	for ai := range s.MeshActors {
		actor := &s.MeshActors[ai]
		var rewritten []scene.RenderPair

		for _, pair := range actor.RenderPairs {
			mesh, ok := meshByName[pair.MeshName]
			if !ok {
				return ErrNameNotFound
			}
			mat, ok := materialByName[pair.MaterialName]
			if !ok {
				return ErrNameNotFound
			}

			opaqueMesh, transpMesh, err := splitMeshTriangles(*mesh, mat, assetDir)
			if err != nil {
				return err
			}

			if len(opaqueMesh.Indices) > 0 {
				newMeshes[opaqueMesh.Name] = opaqueMesh
				rewritten = append(rewritten, scene.RenderPair{MeshName: opaqueMesh.Name, MaterialName: mat.Name})
			}
			if transpMesh != nil && len(transpMesh.Indices) > 0 {
				newMeshes[transpMesh.Name] = *transpMesh
				rewritten = append(rewritten, scene.RenderPair{
					MeshName:     transpMesh.Name,
					MaterialName: mat.Name + transpSuffix,
				})
			}
		}

		actor.RenderPairs = rewritten
	}

	meshes := make([]scene.Mesh, 0, len(newMeshes))
	for _, m := range newMeshes {
		meshes = append(meshes, m)
	}
	sort.Slice(meshes, func(i, j int) bool { return meshes[i].Name < meshes[j].Name })
	s.Meshes = meshes

	return nil
}

// splitMeshTriangles classifies each triangle of mesh as opaque or
// transparent by sampling the albedo texture named by mat, and returns
// the two resulting meshes (the transparent one is nil if mat has no
// usable albedo texture — treated as fully opaque).
func splitMeshTriangles(mesh scene.Mesh, mat scene.Material, assetDir string) (scene.Mesh, *scene.Mesh, error) {
	img, err := loadAlbedo(mat.AlbedoMap, assetDir)
	if err != nil || img == nil {
		return mesh, nil, nil
	}

	opaque := scene.Mesh{Name: mesh.Name, SkeletonName: mesh.SkeletonName, Vertices: mesh.Vertices}
	transp := scene.Mesh{Name: mesh.Name + transpSuffix, SkeletonName: mesh.SkeletonName, Vertices: mesh.Vertices}

	w, h := img.Dimensions()

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		if triangleIsTransparent(mesh.Vertices[a].UV, mesh.Vertices[b].UV, mesh.Vertices[c].UV, img, w, h) {
			transp.Indices = append(transp.Indices, a, b, c)
		} else {
			opaque.Indices = append(opaque.Indices, a, b, c)
		}
	}

	return opaque, &transp, nil
}

func loadAlbedo(relPath, assetDir string) (imgsrc.Image, error) {
	if relPath == "" {
		return nil, nil
	}
	full := filepath.Join(assetDir, relPath)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, nil
	}
	img, err := imgsrc.Decode(full, data)
	if err != nil {
		return nil, nil
	}
	if img.NeedsTranscode() {
		if err := img.TranscodeToRGBA8(); err != nil {
			return nil, nil
		}
	}
	return img, nil
}

func triangleIsTransparent(uvA, uvB, uvC [2]float32, img imgsrc.Image, w, h int) bool {
	minX, minY, maxX, maxY := triangleUVBoundingBox(uvA, uvB, uvC, w, h)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px := (float64(x) + 0.5) / float64(w)
			py := (float64(y) + 0.5) / float64(h)
			if !pointInTriangle(px, py, uvA, uvB, uvC) {
				continue
			}
			c := img.SampleRGBA8(x, y)
			if c[3] < opaqueAlphaThreshold {
				return true
			}
		}
	}
	return false
}

func triangleUVBoundingBox(a, b, c [2]float32, w, h int) (minX, minY, maxX, maxY int) {
	minU, maxU := minF3(a[0], b[0], c[0]), maxF3(a[0], b[0], c[0])
	minV, maxV := minF3(a[1], b[1], c[1]), maxF3(a[1], b[1], c[1])

	minX = clampInt(int(minU*float32(w)), 0, w-1)
	maxX = clampInt(int(maxU*float32(w)), 0, w-1)
	minY = clampInt(int(minV*float32(h)), 0, h-1)
	maxY = clampInt(int(maxV*float32(h)), 0, h-1)
	return
}

func pointInTriangle(px, py float64, a, b, c [2]float32) bool {
	sign := func(x1, y1, x2, y2, x3, y3 float64) float64 {
		return (x1-x3)*(y2-y3) - (x2-x3)*(y1-y3)
	}
	ax, ay := float64(a[0]), float64(a[1])
	bx, by := float64(b[0]), float64(b[1])
	cx, cy := float64(c[0]), float64(c[1])

	d1 := sign(px, py, ax, ay, bx, by)
	d2 := sign(px, py, bx, by, cx, cy)
	d3 := sign(px, py, cx, cy, ax, ay)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func minF3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxF3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
