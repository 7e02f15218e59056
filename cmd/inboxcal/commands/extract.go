package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/calref/inboxcal/internal/email"
	"github.com/calref/inboxcal/internal/extract"
	"github.com/calref/inboxcal/internal/extract/rules"
	"github.com/calref/inboxcal/internal/models"
)

// NewExtractCmd creates the extract command
func NewExtractCmd() *cobra.Command {
	var timezone string
	var nowISO string

	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Run the rules pass over email files and print items as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := extractFiles(args, timezone, nowISO)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		},
	}

	cmd.Flags().StringVar(&timezone, "timezone", "America/Toronto", "IANA timezone for local timestamps")
	cmd.Flags().StringVar(&nowISO, "now", "", "Reference instant (YYYY-MM-DDTHH:mm[:ss]), defaults to the current time")

	return cmd
}

// extractFiles parses each file as an email and runs the rules pass,
// prefixing item titles with the email subject.
func extractFiles(paths []string, timezone, nowISO string) ([]models.ExtractedItem, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	ex := rules.NewExtractor(loc)
	now := extract.ReferenceTime(loc, nowISO)

	var all []models.ExtractedItem
	for i, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		parsed := email.Parse(content, i)

		items := ex.Extract([]string{parsed.Text}, now)
		for j := range items {
			if parsed.Subject != "" && parsed.Subject != email.NoSubject {
				items[j].Title = "[" + parsed.Subject + "] " + items[j].Title
			}
			if items[j].Source == "" {
				items[j].Source = models.SourceRules
			}
			items[j].Confidence = extract.RulesConfidence
		}
		all = append(all, items...)
	}

	return rules.Dedupe(all), nil
}
