package cli

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/magda-charts/internal/config"
	"github.com/Conceptual-Machines/magda-charts/internal/models"
	"github.com/Conceptual-Machines/magda-charts/internal/services"
	"github.com/Conceptual-Machines/magda-charts/internal/theory"
	"github.com/spf13/cobra"
)

func newChartService() (*services.ChartService, error) {
	registry, err := loadRegistry(config.Load())
	if err != nil {
		return nil, err
	}
	return services.NewChartService(registry, nil, nil), nil
}

func newScaleCmd() *cobra.Command {
	var color, mode, scheme string

	cmd := &cobra.Command{
		Use:   "scale <key>",
		Short: "Prints the scale of a key",
		Long:  `Prints the seven notes of a key in a mode, spelled sharp or flat.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newChartService()
			if err != nil {
				return err
			}
			resp, err := svc.GenerateScale(cmd.Context(), models.ScaleRequest{
				Key:    args[0],
				Color:  color,
				Mode:   mode,
				Scheme: scheme,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(resp.Scale, " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "sharp or flat (default: the scheme's color for the key)")
	cmd.Flags().StringVar(&mode, "mode", string(theory.Major), "major, minor or a church mode")
	cmd.Flags().StringVar(&scheme, "scheme", theory.DefaultSchemeName, "color scheme used when --color is not set")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var opts models.RenderOptions
	var structure bool

	cmd := &cobra.Command{
		Use:   "render <key> <symbol>...",
		Short: "Renders a progression into a key",
		Long: `Renders relative chord symbols such as "I V vi IV" into chord names.

Symbols may be passed as separate arguments or as one quoted string.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newChartService()
			if err != nil {
				return err
			}

			opts.Key = args[0]
			var symbols []string
			for _, arg := range args[1:] {
				symbols = append(symbols, strings.Fields(arg)...)
			}

			result, err := svc.RenderProgression(cmd.Context(), symbols, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Join(result.Chords, " "))
			if structure {
				counts := make([]string, len(result.RepeatStructure))
				for i, n := range result.RepeatStructure {
					counts[i] = fmt.Sprint(n)
				}
				fmt.Fprintln(out, strings.Join(counts, " "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Scheme, "scheme", theory.DefaultSchemeName, "color scheme")
	cmd.Flags().IntVar(&opts.Modulation, "modulation", 0, "semitones to transpose the key by")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "print one chord per run of repeats")
	cmd.Flags().BoolVar(&structure, "structure", false, "also print the repeat structure")
	return cmd
}

func newSchemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "Lists color schemes",
		Long:  `Lists every color scheme with the keys it writes with flats.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := loadRegistry(config.Load())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range registry.Names() {
				scheme, err := registry.Get(name)
				if err != nil {
					return err
				}
				var flats []string
				for pc, color := range scheme.Table() {
					if color == theory.Flat {
						flats = append(flats, theory.NewKey(pc).Name(theory.Flat))
					}
				}
				fmt.Fprintf(out, "%s\tfallback=%s\tflat=[%s]\n", name, scheme.Fallback(), strings.Join(flats, " "))
			}
			return nil
		},
	}
}
