package cmd

import (
	"fmt"

	"github.com/philipparndt/meshview/internal/scene"
	"github.com/philipparndt/meshview/pkg/analysis"
	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <files...>",
	Short: "Display general information about a model",
	Long:  "Show triangle count, dimensions, surface area, volume and edge statistics of an STL or OBJ model.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	sc, _, err := loadScene(cmd.Context(), args, 1, 1, scene.DefaultPalette, scene.ThemeLight, nopRenderer{})
	if err != nil {
		return err
	}
	node := sc.Current()
	result := analysis.Analyze(node.Triangles())
	bbox := node.LocalBounds()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Model Information")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "Name: %s\n", node.Name)
	fmt.Fprintf(out, "Files: %s\n", describe(args))
	fmt.Fprintf(out, "Kind: %s (%d meshes)\n", node.Kind, len(node.Meshes))
	fmt.Fprintf(out, "Textures: %d\n\n", len(node.Textures()))

	fmt.Fprintln(out, "Model Statistics:")
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Degenerate: %d\n", result.Degenerate)
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n", result.SurfaceArea)
	fmt.Fprintf(out, "  Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", formatVector(bbox.Min))
	fmt.Fprintf(out, "  Max: %s\n", formatVector(bbox.Max))
	fmt.Fprintf(out, "  Center: %s\n\n", formatVector(bbox.Center()))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Height (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Depth (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", bbox.Diagonal())

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n", result.AvgEdgeLength)
	return nil
}

func formatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
