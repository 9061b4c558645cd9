package commands

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leadscout/leadscout/internal/leads"
	"github.com/leadscout/leadscout/internal/logger"
	"github.com/leadscout/leadscout/internal/output"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <export>...",
	Short: "Merge earlier exports and dedupe the union",
	Long: `Merge loads one or more earlier exports (csv or xlsx), unions
their rows in argument order and deduplicates them by a chosen column
subset, keeping the first occurrence. Useful for folding a fresh scan
into last week's lead list without re-contacting the same property.

Examples:
  # Fold a fresh scan into an existing list, deduped by detail URL
  leadscout merge old-leads.csv new-leads.csv -o leads.csv

  # Dedupe on property identity instead
  leadscout merge old-leads.xlsx new-leads.csv \
      --on "Property Name,Address" -o leads.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().String("on", "Source URL", "comma-separated columns forming the dedupe key")
	addExportFlags(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	key, err := mergeKey(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	var all []leads.Record
	for _, path := range args {
		recs, err := output.ReadFile(path)
		if err != nil {
			logError("%v", err)
			return err
		}
		logger.Debug("export loaded", "path", path, "rows", len(recs))
		all = append(all, recs...)
	}

	records := leads.DedupeBy(all, key)

	if err := exportRecords(ctx, cmd, records); err != nil {
		logError("%v", err)
		return err
	}

	logger.Info("merge complete",
		"inputs", len(args),
		"rows", humanize.Comma(int64(len(all))),
		"leads", humanize.Comma(int64(len(records))))
	return nil
}

// mergeKey builds the dedupe key from the --on column list. Every named
// column must be a stored export column.
func mergeKey(cmd *cobra.Command) (func(leads.Record) string, error) {
	onStr, _ := cmd.Flags().GetString("on")

	var cols []string
	for _, c := range strings.Split(onStr, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := output.Value(leads.Record{}, c); !ok {
			return nil, fmt.Errorf("unknown merge column %q (choose from: %s)",
				c, strings.Join(output.Columns(false), ", "))
		}
		cols = append(cols, c)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("--on needs at least one column")
	}

	return func(r leads.Record) string {
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i], _ = output.Value(r, c)
		}
		return strings.Join(parts, "\x1f")
	}, nil
}
