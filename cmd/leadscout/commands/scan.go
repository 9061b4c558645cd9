package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leadscout/leadscout/internal/config"
	"github.com/leadscout/leadscout/internal/fetch"
	"github.com/leadscout/leadscout/internal/leads"
	"github.com/leadscout/leadscout/internal/logger"
	"github.com/leadscout/leadscout/internal/output"
	"github.com/leadscout/leadscout/internal/scan"
	"github.com/leadscout/leadscout/internal/sheets"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan listing pages for property leads",
	Long: `Scan derives listing search pages from a city/state pair (or a
pasted search URL), harvests property detail links from them, and
extracts one lead per property.

Examples:
  # City scan across the default source family
  leadscout scan --city "Miami" --state FL -o leads.csv

  # Both families, deeper pagination
  leadscout scan --city "Austin" --state TX \
      --families apartments,apartmentlist --max-pages 5

  # Pasted search URL, skip the management-site enrichment pass
  leadscout scan --url "https://www.apartments.com/miami-fl/" \
      --follow-management=false`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	flags := scanCmd.Flags()

	// Target
	flags.String("city", "", "city to scan (used with --state)")
	flags.String("state", "", "two-letter state abbreviation")
	flags.StringP("url", "u", "", "listing search URL (overrides --city/--state)")

	// Crawl settings
	flags.StringSlice("families", []string{"apartments"}, "source families: apartments, apartmentlist")
	flags.Int("max-pages", 3, "max listing pages per family")
	flags.Int("max-records", 200, "max detail pages to process")
	flags.Bool("follow-management", true, "follow \"Managed by\" links to hunt for contact details")
	flags.Float64("delay-min", 0.6, "min delay between requests, seconds")
	flags.Float64("delay-max", 1.5, "max delay between requests, seconds")
	flags.String("referer", "", "Referer header to send with requests")
	flags.Duration("timeout", 20*time.Second, "per-request timeout")

	// Output settings
	addExportFlags(scanCmd)
}

// addExportFlags registers the output flags shared by scan and urls.
func addExportFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "csv", "output format: csv, xlsx, json, jsonl, yaml")
	flags.Bool("messages", false, "include outreach message columns")
	flags.String("sheet-id", "", "Google Sheets spreadsheet ID to append to")
	flags.String("sheet-tab", "Leads", "Google Sheets tab name")
	flags.String("credentials", "", "Google service account credentials file")
}

func runScan(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := scanConfig(cmd)
	cfg.City, _ = cmd.Flags().GetString("city")
	cfg.State, _ = cmd.Flags().GetString("state")
	cfg.SearchURL, _ = cmd.Flags().GetString("url")

	scanner, err := scan.New(cfg, fetchClient(cfg))
	if err != nil {
		logError("%v", err)
		return err
	}

	report, err := scanner.Run(ctx)
	if err != nil {
		logError("%v", err)
		return err
	}

	if err := exportRecords(ctx, cmd, report.Records); err != nil {
		logError("%v", err)
		return err
	}

	logger.Info("scan complete",
		"leads", humanize.Comma(int64(len(report.Records))),
		"listing_pages", report.ListingPages,
		"candidates", humanize.Comma(int64(report.Candidates)),
		"processed", report.Processed,
		"blocked", report.Blocked)
	return nil
}

// scanConfig assembles the crawl configuration from the command's flags,
// letting the config file fill in any flag left at its default.
func scanConfig(cmd *cobra.Command) config.Scan {
	cfg := config.Default()
	flags := cmd.Flags()

	cfg.Families, _ = flags.GetStringSlice("families")
	if flags.Lookup("max-pages") != nil {
		cfg.MaxPages, _ = flags.GetInt("max-pages")
	}
	cfg.MaxRecords, _ = flags.GetInt("max-records")
	cfg.FollowManagement, _ = flags.GetBool("follow-management")
	cfg.DelayMin, _ = flags.GetFloat64("delay-min")
	cfg.DelayMax, _ = flags.GetFloat64("delay-max")
	cfg.Referer, _ = flags.GetString("referer")
	cfg.Timeout, _ = flags.GetDuration("timeout")

	if !flags.Changed("families") && viper.InConfig("families") {
		cfg.Families = viper.GetStringSlice("families")
	}
	if !flags.Changed("delay-min") && viper.InConfig("delay_min") {
		cfg.DelayMin = viper.GetFloat64("delay_min")
	}
	if !flags.Changed("delay-max") && viper.InConfig("delay_max") {
		cfg.DelayMax = viper.GetFloat64("delay_max")
	}
	if !flags.Changed("referer") && viper.InConfig("referer") {
		cfg.Referer = viper.GetString("referer")
	}
	return cfg
}

func fetchClient(cfg config.Scan) *fetch.Client {
	fc := fetch.DefaultConfig()
	fc.Timeout = cfg.Timeout
	fc.Referer = cfg.Referer
	return fetch.New(fc)
}

// exportRecords writes the record set to the selected sinks. The local
// file (or stdout) always gets written; the spreadsheet append is
// attempted afterwards so a sink failure never loses the records.
func exportRecords(ctx context.Context, cmd *cobra.Command, records []leads.Record) error {
	flags := cmd.Flags()
	withMessages, _ := flags.GetBool("messages")

	outFile := os.Stdout
	if outPath, _ := flags.GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		outFile = f
	}

	formatStr, _ := flags.GetString("format")
	writer, err := output.NewWriter(outFile, output.Format(formatStr), output.WithMessageColumns(withMessages))
	if err != nil {
		return err
	}
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	sheetID, _ := flags.GetString("sheet-id")
	if sheetID == "" {
		return nil
	}
	credentials, _ := flags.GetString("credentials")
	tab, _ := flags.GetString("sheet-tab")

	client, err := sheets.New(ctx, credentials)
	if err != nil {
		return err
	}
	if _, err := client.Append(ctx, sheetID, tab, records, withMessages); err != nil {
		return err
	}
	return nil
}
