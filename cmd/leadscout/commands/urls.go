package commands

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leadscout/leadscout/internal/logger"
	"github.com/leadscout/leadscout/internal/scan"
)

var urlsCmd = &cobra.Command{
	Use:   "urls [file]",
	Short: "Extract leads from known property detail URLs",
	Long: `Urls skips the listing harvest and extracts a lead from each
property detail URL supplied, one per line. URLs are read from the
given file, or from stdin when no file is named. Lines whose host
matches no known source family are skipped with a warning.

Examples:
  leadscout urls properties.txt -o leads.csv

  cat properties.txt | leadscout urls --messages -o leads.xlsx --format xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runURLs,
}

func init() {
	rootCmd.AddCommand(urlsCmd)

	flags := urlsCmd.Flags()
	flags.StringSlice("families", []string{"apartments", "apartmentlist"}, "source families to match URLs against")
	flags.Int("max-records", 200, "max detail pages to process")
	flags.Bool("follow-management", true, "follow \"Managed by\" links to hunt for contact details")
	flags.Float64("delay-min", 0.6, "min delay between requests, seconds")
	flags.Float64("delay-max", 1.5, "max delay between requests, seconds")
	flags.String("referer", "", "Referer header to send with requests")
	flags.Duration("timeout", 20*time.Second, "per-request timeout")

	addExportFlags(urlsCmd)
}

func runURLs(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	urls, err := readURLs(args)
	if err != nil {
		logError("%v", err)
		return err
	}
	if len(urls) == 0 {
		return cmd.Help()
	}

	cfg := scanConfig(cmd)
	cfg.MaxPages = 1 // no listing crawl on this path
	cfg.URLs = urls

	scanner, err := scan.New(cfg, fetchClient(cfg))
	if err != nil {
		logError("%v", err)
		return err
	}

	report, err := scanner.RunURLs(ctx, urls)
	if err != nil {
		logError("%v", err)
		return err
	}

	if err := exportRecords(ctx, cmd, report.Records); err != nil {
		logError("%v", err)
		return err
	}

	logger.Info("extraction complete",
		"leads", humanize.Comma(int64(len(report.Records))),
		"supplied", len(urls),
		"processed", report.Processed,
		"blocked", report.Blocked)
	return nil
}

// readURLs loads newline-separated URLs from the named file or stdin.
// Blank lines and lines starting with # are ignored.
func readURLs(args []string) ([]string, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0]) //#nosec G304 -- CLI tool reads a user-specified input file
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var urls []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, sc.Err()
}
