package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/models"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <mesh>",
		Short: "print mesh statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			mesh, err := loadMesh(args[0], cfg)
			if err != nil {
				return err
			}
			fmt.Println(describeMesh(mesh))
			return nil
		},
	}
}

// describeMesh renders the mesh summary panel.
func describeMesh(m *models.Mesh) string {
	st := m.Stats()
	lo, hi := m.Bounds()
	size := m.Size()

	lines := []string{
		titleStyle.Render(m.Name),
		row("vertices", st.Vertices),
		row("faces", st.Faces),
		row("triangles", st.Triangles),
		row("polygons", st.Polygons),
		row("degenerate", st.Degenerate),
		row("bounds min", fmt.Sprintf("%.3f %.3f %.3f", lo.X, lo.Y, lo.Z)),
		row("bounds max", fmt.Sprintf("%.3f %.3f %.3f", hi.X, hi.Y, hi.Z)),
		row("size", fmt.Sprintf("%.3f %.3f %.3f", size.X, size.Y, size.Z)),
	}
	if st.Polygons > 0 {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("%d faces with more than 3 vertices draw only their first triangle", st.Polygons)))
	}
	if st.Degenerate > 0 {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("%d faces with fewer than 3 vertices are never drawn", st.Degenerate)))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
