// Package tessellate converts solids from the csg boolean engine into
// triangle meshes suitable for rendering. One mesh is produced per
// solid; faces are fanned into triangles with flat per-face normals.
package tessellate

import (
	"fmt"

	"github.com/solidmodel/csgkit/pkg/csg"
	"github.com/solidmodel/csgkit/pkg/kernel"
)

// Solid triangulates every polygon of s into a flat-array mesh. Convex
// polygons fan from their first vertex; vertices are not shared between
// faces so each triangle keeps its flat normal.
func Solid(s *csg.Solid, partName string) (*kernel.Mesh, error) {
	mesh := &kernel.Mesh{PartName: partName}
	if s == nil || s.IsEmpty() {
		return mesh, nil
	}

	for pi, poly := range s.Polygons() {
		vertices := poly.Vertices()
		if len(vertices) < 3 {
			continue
		}
		plane, err := poly.Plane()
		if err != nil {
			return nil, fmt.Errorf("tessellate: polygon %d: %w", pi, err)
		}
		nx := float32(plane.Normal.X)
		ny := float32(plane.Normal.Y)
		nz := float32(plane.Normal.Z)

		for i := 2; i < len(vertices); i++ {
			for _, v := range [3]int{0, i - 1, i} {
				p := vertices[v]
				mesh.Indices = append(mesh.Indices, uint32(len(mesh.Vertices)/3))
				mesh.Vertices = append(mesh.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
				mesh.Normals = append(mesh.Normals, nx, ny, nz)
			}
		}
	}
	return mesh, nil
}
