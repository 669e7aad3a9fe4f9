package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/anstrom/portsim/internal/config"
)

// schedulesCmd lists the recurring scans from the configuration file.
var schedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "List configured recurring scans",
	Long: `List the recurring scans defined under "schedules" in the configuration
file together with their next run time. Schedules only fire while
"portsim server" is running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return printSchedules(cmd.OutOrStdout(), cfg.Schedules, time.Now())
	},
}

func init() {
	rootCmd.AddCommand(schedulesCmd)
}

func printSchedules(w io.Writer, entries []config.ScheduleConfig, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No schedules configured")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Name", "Cron", "Target", "Ports", "Type", "Next Run")
	for _, e := range entries {
		next := "invalid"
		if sched, err := cron.ParseStandard(e.Cron); err == nil {
			next = sched.Next(now).Format(time.RFC3339)
		}
		scanType := e.ScanType
		if scanType == "" {
			scanType = "tcp"
		}
		if err := table.Append([]string{
			e.Name,
			e.Cron,
			e.Target,
			fmt.Sprintf("%d-%d", e.StartPort, e.EndPort),
			scanType,
			next,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
