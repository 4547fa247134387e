package cli

import (
	"fmt"

	"github.com/Conceptual-Machines/magda-charts/internal/config"
	"github.com/Conceptual-Machines/magda-charts/internal/theory"
	"github.com/spf13/cobra"
)

// releaseVersion is set by Execute from the build's ldflags
var releaseVersion = "dev"

// NewRootCmd builds the magda-charts command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "magda-charts",
		Short: "Chord chart rendering",
		Long: `Renders relative chord progressions (roman numerals) into concrete chord
names for any key, and serves the same operations over HTTP.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newScaleCmd(),
		newRenderCmd(),
		newSchemesCmd(),
	)
	return rootCmd
}

func Execute(version string) {
	releaseVersion = version
	cobra.CheckErr(NewRootCmd().Execute())
}

// loadRegistry builds the scheme registry from the built-ins plus the
// optional COLOR_SCHEMES_FILE
func loadRegistry(cfg *config.Config) (*theory.Registry, error) {
	extra, err := config.LoadColorSchemes(cfg.ColorSchemesFile)
	if err != nil {
		return nil, err
	}
	registry, err := theory.NewRegistry(extra...)
	if err != nil {
		return nil, fmt.Errorf("invalid color schemes in %s: %w", cfg.ColorSchemesFile, err)
	}
	return registry, nil
}
