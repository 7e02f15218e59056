package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calref/inboxcal/internal/ics"
)

// NewICSCmd creates the ics command
func NewICSCmd() *cobra.Command {
	var timezone string
	var nowISO string
	var output string

	cmd := &cobra.Command{
		Use:   "ics [files...]",
		Short: "Run the rules pass over email files and write an iCalendar file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := extractFiles(args, timezone, nowISO)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no calendar items found")
			}

			calendar, err := ics.Build(items)
			if err != nil {
				return err
			}

			if output == "-" {
				fmt.Fprint(cmd.OutOrStdout(), calendar)
				return nil
			}
			return os.WriteFile(output, []byte(calendar), 0o644)
		},
	}

	cmd.Flags().StringVar(&timezone, "timezone", "America/Toronto", "IANA timezone for local timestamps")
	cmd.Flags().StringVar(&nowISO, "now", "", "Reference instant (YYYY-MM-DDTHH:mm[:ss]), defaults to the current time")
	cmd.Flags().StringVarP(&output, "output", "o", "deadlines.ics", "Output file, or - for stdout")

	return cmd
}
