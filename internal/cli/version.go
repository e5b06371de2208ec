package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jharder01/Huntarr.io/internal/buildinfo"
	"github.com/jharder01/Huntarr.io/internal/updater"
)

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%s %s\n", styleBrand.Render("Huntarr"), styleVersion.Render(buildinfo.Version))
		printField("Commit", buildinfo.CommitHash)
		printField("Built", buildinfo.BuildDate)
		printField("OS/Arch", runtime.GOOS+"/"+runtime.GOARCH)
		printField("Go", runtime.Version())

		if !versionCheck {
			return nil
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		result, err := updater.CheckForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("update check failed: %w", err)
		}
		fmt.Println()
		if result.Available {
			fmt.Println(styleWarning.Render("Update available: " + result.LatestVersion))
			if result.ReleaseURL != "" {
				fmt.Println(styleHint.Render("  " + result.ReleaseURL))
			}
		} else {
			fmt.Println(styleSuccess.Render("✓ Up to date"))
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
}
