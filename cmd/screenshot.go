package cmd

import (
	"fmt"
	"os"

	"github.com/guipilot/guipilot/internal/control"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture a screenshot of the display",
	Long: `Capture the main display, downscaled for agent consumption. With
--annotate and --app, actionable elements of the app's focused window are
overlaid with their tree ids so an agent can relate ids to pixels.

Examples:
  guipilot screenshot --out screen.png
  guipilot screenshot --annotate --app Notes --out notes.png
  guipilot screenshot --image-format jpg --quality 60 --out - > screen.jpg`,
	Args: cobra.NoArgs,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("out", "screenshot.png", "Output file path (- for stdout)")
	screenshotCmd.Flags().String("image-format", "png", "Image format: png, jpg")
	screenshotCmd.Flags().Int("quality", 80, "JPEG quality 1-100")
	screenshotCmd.Flags().Float64("scale", 0.5, "Scale factor 0.1-1.0")
	screenshotCmd.Flags().Bool("annotate", false, "Overlay element ids from --app's focused window")
	screenshotCmd.Flags().String("app", "", "Application whose elements are annotated")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("image-format")
	quality, _ := cmd.Flags().GetInt("quality")
	scale, _ := cmd.Flags().GetFloat64("scale")
	annotate, _ := cmd.Flags().GetBool("annotate")
	app, _ := cmd.Flags().GetString("app")

	if annotate && app == "" {
		return fmt.Errorf("--annotate requires --app")
	}

	ctrl, err := newController()
	if err != nil {
		return err
	}
	data, err := ctrl.Screenshot(cmd.Context(), control.ScreenshotOptions{
		Format:   format,
		Quality:  quality,
		Scale:    scale,
		Annotate: annotate,
		App:      app,
	})
	if err != nil {
		return err
	}

	if out == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
	return nil
}
