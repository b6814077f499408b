package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-builder/internal/crop"
	"resume-builder/internal/shared/telemetry"
)

const app = "resumectl"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "resumectl crops profile photos and exports resumes from the command line",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		telemetry.Configure(viper.GetBool("json"), viper.GetBool("debug"))
	},
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() error {
	defer telemetry.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// loadSession decodes an image file into a fresh crop session.
func loadSession(path string, aspect float64) (*crop.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	img, err := crop.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return crop.Open(img, crop.WithAspectRatio(aspect)), nil
}

// writeOutput stores the final JPEG, or its data URI when asked.
func writeOutput(path string, jpegBytes []byte, asDataURI bool) error {
	payload := jpegBytes
	if asDataURI {
		payload = []byte(crop.DataURI(jpegBytes))
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
