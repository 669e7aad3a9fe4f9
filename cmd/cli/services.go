package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/anstrom/portsim/internal/services"
)

// servicesCmd prints the well-known service catalog.
var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the well-known service catalog",
	Long: `List the ports portsim recognizes and the service names it reports for
them. Any other port is reported as "Unknown".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printServices(cmd.OutOrStdout(), services.All())
	},
}

func init() {
	rootCmd.AddCommand(servicesCmd)
}

func printServices(w io.Writer, entries []services.Entry) error {
	table := tablewriter.NewWriter(w)
	table.Header("Port", "Service")
	for _, e := range entries {
		if err := table.Append([]string{fmt.Sprintf("%d", e.Port), e.Service}); err != nil {
			return err
		}
	}
	return table.Render()
}
