package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/wdkit/internal/location"
)

// locationOutput is the JSON shape of a location query. Location is
// omitted when the session reports no value.
type locationOutput struct {
	Available bool               `json:"available"`
	Location  *location.Location `json:"location,omitempty"`
}

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Read or override the geolocation of a browser session",
	Long: `Read or override the geolocation reported by a browser session.

The session is opened from the settings in config.yaml: an existing browser
when control_url is set, otherwise a newly launched one.`,
}

var locationGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the location the session reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, sess session) error {
			loc, ok, err := sess.Location(ctx)
			if err != nil {
				return err
			}
			return printLocation(cmd, loc, ok)
		})
	},
}

var (
	setLatitude  float64
	setLongitude float64
	setAltitude  float64
)

var locationSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Override the location the session reports",
	Long: `Override the location the session reports, then read it back.

The override lasts as long as the session, so the reported value is the one
page scripts observe right after the override.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		want := location.Location{
			Latitude:  setLatitude,
			Longitude: setLongitude,
			Altitude:  setAltitude,
		}

		return withSession(func(ctx context.Context, sess session) error {
			if err := sess.SetLocation(ctx, want); err != nil {
				return err
			}

			loc, ok, err := sess.Location(ctx)
			if err != nil {
				return err
			}
			if !jsonOutput {
				PrintSuccess(cmd.OutOrStdout(), "Location override set")
				if !ok || loc != want {
					PrintWarning(cmd.OutOrStdout(), "Session reports a different location than requested")
				}
			}
			return printLocation(cmd, loc, ok)
		})
	},
}

func printLocation(cmd *cobra.Command, loc location.Location, ok bool) error {
	w := cmd.OutOrStdout()

	if jsonOutput {
		out := locationOutput{Available: ok}
		if ok {
			out.Location = &loc
		}
		return outputJSON(w, out)
	}

	if !ok {
		PrintEmptyState(w, "No location available")
		return nil
	}

	PrintLabelValue(w, "Latitude", formatFloat(loc.Latitude))
	PrintLabelValue(w, "Longitude", formatFloat(loc.Longitude))
	PrintLabelValue(w, "Altitude", formatFloat(loc.Altitude))
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func init() {
	locationSetCmd.Flags().Float64Var(&setLatitude, "lat", 0, "Latitude in degrees")
	locationSetCmd.Flags().Float64Var(&setLongitude, "lon", 0, "Longitude in degrees")
	locationSetCmd.Flags().Float64Var(&setAltitude, "alt", 0, "Altitude in meters")
	_ = locationSetCmd.MarkFlagRequired("lat")
	_ = locationSetCmd.MarkFlagRequired("lon")

	locationCmd.AddCommand(locationGetCmd)
	locationCmd.AddCommand(locationSetCmd)
}
