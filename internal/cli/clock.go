package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/wdkit/internal/clock"
)

// instantOutput is the JSON shape of an Instant.
type instantOutput struct {
	Instant clock.Instant `json:"instant"`
	Time    string        `json:"time"`
}

func newInstantOutput(i clock.Instant) instantOutput {
	return instantOutput{Instant: i, Time: i.Time().Format(time.RFC3339Nano)}
}

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Query the time source used for deadlines",
	Long: `Query the time source used by wait and polling logic.

Instants are milliseconds since the Unix epoch (UTC).`,
}

var clockNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Print the current instant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := newInstantOutput(timeSource.Now())
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), out)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", out.Instant)
		PrintLabelValue(cmd.OutOrStdout(), "Time", out.Time)
		return nil
	},
}

var clockLaterByCmd = &cobra.Command{
	Use:   "later-by <millis>",
	Short: "Print the deadline the given milliseconds from now",
	Long: `Print now plus the given milliseconds.

Negative and zero durations are allowed. Results beyond the representable
range saturate at the minimum or maximum instant.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		millis, err := parseMillis(args[0])
		if err != nil {
			return err
		}

		out := newInstantOutput(timeSource.LaterBy(millis))
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), out)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", out.Instant)
		PrintLabelValue(cmd.OutOrStdout(), "Time", out.Time)
		return nil
	},
}

// beforeOutput is the JSON shape of a deadline check.
type beforeOutput struct {
	Deadline clock.Instant `json:"deadline"`
	Before   bool          `json:"before"`
}

var clockBeforeCmd = &cobra.Command{
	Use:   "before <deadline>",
	Short: "Report whether now is strictly before the deadline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deadline, err := parseMillis(args[0])
		if err != nil {
			return err
		}

		out := beforeOutput{
			Deadline: clock.Instant(deadline),
			Before:   timeSource.IsNowBefore(clock.Instant(deadline)),
		}
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), out)
		}

		fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(out.Before))
		return nil
	},
}

func parseMillis(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid milliseconds %q: %w", s, err)
	}
	return n, nil
}

func init() {
	clockCmd.AddCommand(clockNowCmd)
	clockCmd.AddCommand(clockLaterByCmd)
	clockCmd.AddCommand(clockBeforeCmd)
}
