package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newTimerCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Pace a workshop with a stage timer",
		Long: `Run a timer while shaping the idea. Every stage duration (timer.stage_duration,
20s by default) the nudge moves on to the next stage. The timer keeps running
between commands until it is stopped; ` + "`idealauncher status`" + ` shows the nudge.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start the timer",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Session.StartTimer(); err != nil {
					return app.fail(err)
				}
				app.Printer.Success("Timer started")
				return nil
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop the timer",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				elapsed := app.Session.Timer().Elapsed
				if err := app.Session.StopTimer(); err != nil {
					return app.fail(err)
				}
				app.Printer.Success("Timer stopped after %s", elapsed.Round(time.Second))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the elapsed time and the current nudge",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app.printTimer()
				return nil
			},
		},
	)

	return cmd
}

// printTimer prints the elapsed time and nudge of the workshop timer.
func (app *App) printTimer() {
	t := app.Session.Timer()
	if !t.Running {
		app.Printer.KeyValue("timer", "off")
		return
	}
	app.Printer.KeyValue("timer", t.Elapsed.Round(time.Second))
	if t.Nudge != "" {
		app.Printer.Info("  %s", t.Nudge)
	}
}
