package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resume-builder/internal/crop"
	"resume-builder/internal/shared/telemetry"
)

var cropFlags struct {
	output  string
	zoom    float64
	x, y    float64
	aspect  float64
	dataURI bool
}

var cropCmd = &cobra.Command{
	Use:   "crop <image>",
	Short: "Crop a photo into a 300x300 circular profile image",
	Long: `crop applies a zoom and offset to the photo and writes the circular
profile image as JPEG. The offset is where the top-left corner of the
zoomed photo lands on the 300x300 crop surface.`,
	Args: cobra.ExactArgs(1),
	RunE: runCrop,
}

func init() {
	rootCmd.AddCommand(cropCmd)

	cropCmd.Flags().StringVarP(&cropFlags.output, "output", "o", "profile.jpg", "output file")
	cropCmd.Flags().Float64VarP(&cropFlags.zoom, "zoom", "z", crop.MinZoom, "zoom factor, clamped to [1, 3]")
	cropCmd.Flags().Float64Var(&cropFlags.x, "x", 0, "horizontal offset in pixels")
	cropCmd.Flags().Float64Var(&cropFlags.y, "y", 0, "vertical offset in pixels")
	cropCmd.Flags().Float64Var(&cropFlags.aspect, "aspect", 1, "requested aspect ratio")
	cropCmd.Flags().BoolVar(&cropFlags.dataURI, "data-uri", false, "write a data:image/jpeg;base64 URI instead of raw JPEG")
}

func runCrop(_ *cobra.Command, args []string) error {
	s, err := loadSession(args[0], cropFlags.aspect)
	if err != nil {
		return err
	}
	defer s.Cancel()

	effective := s.SetZoom(cropFlags.zoom)
	// an offset is a drag from the origin
	s.BeginDrag(crop.Point{})
	s.ContinueDrag(crop.Point{X: cropFlags.x, Y: cropFlags.y})
	s.EndDrag()

	out, err := s.Confirm()
	if err != nil {
		return errors.Wrap(err, "failed to render crop")
	}
	if err := writeOutput(cropFlags.output, out, cropFlags.dataURI); err != nil {
		return err
	}

	telemetry.L().Info("crop written",
		zap.String("output", cropFlags.output),
		zap.Float64("zoom", effective),
		zap.Int("bytes", len(out)),
	)
	return nil
}
