package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"hotel-scout/config"
	"hotel-scout/models"
	"hotel-scout/scraper"
	"hotel-scout/scraper/booking"
	"hotel-scout/scraper/fallback"
	"hotel-scout/services"
	"hotel-scout/storage"
	"hotel-scout/utils"
)

var (
	cityFlag   string
	budgetFlag string
)

var rootCmd = &cobra.Command{
	Use:           "hotel-scout [--city <name>] [--budget <amount currency>]",
	Short:         "hotel-scout finds hotels in a city and picks the best value under a budget.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		city, budget, err := readInputs(in, out, cityFlag, budgetFlag)
		if err != nil {
			return err
		}
		return run(cmd.Context(), city, budget)
	},
}

func init() {
	rootCmd.Flags().StringVar(&cityFlag, "city", "", "City to search; prompted for when empty.")
	rootCmd.Flags().StringVar(&budgetFlag, "budget", "", `Maximum price per night, e.g. "50 OMR"; prompted for when empty.`)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// readInputs resolves the city and budget from flags, prompting for any that
// are missing. Both are validated before anything touches the network.
func readInputs(in *bufio.Reader, out io.Writer, city, budgetText string) (string, models.BudgetQuery, error) {
	var err error
	if strings.TrimSpace(city) == "" {
		if city, err = prompt(in, out, "Enter a city: "); err != nil {
			return "", models.BudgetQuery{}, err
		}
	}
	city = strings.TrimSpace(city)
	if city == "" {
		return "", models.BudgetQuery{}, services.ErrMissingCity
	}

	if strings.TrimSpace(budgetText) == "" {
		if budgetText, err = prompt(in, out, "Enter Maximum Budget (e.g., 50 OMR): "); err != nil {
			return "", models.BudgetQuery{}, err
		}
	}
	budget, err := services.ParseBudget(budgetText)
	if err != nil {
		return "", models.BudgetQuery{}, err
	}
	return city, budget, nil
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func run(ctx context.Context, city string, budget models.BudgetQuery) error {
	cfg := config.Load()
	logger := utils.NewLoggerTo(os.Stderr, os.Stderr)
	logger.SetDebug(cfg.Debug)

	logger.Info("=== hotel-scout starting ===")
	logger.Info("Config — fetch mode: %s | retries: %d | primary timeout: %v | fallback timeout: %v",
		cfg.FetchMode, cfg.MaxRetries, cfg.PrimaryTimeout, cfg.FallbackTimeout)

	httpClient := scraper.NewHTTPClient(scraper.ClientOptions{
		MaxRetries:     cfg.MaxRetries,
		RetryBaseDelay: cfg.RetryBaseDelay,
		Logger:         logger,
	})
	headers := scraper.NewHeaderRotator()

	var fetcher booking.PageFetcher
	if cfg.FetchMode == config.FetchModeBrowser {
		fetcher = booking.NewBrowserFetcher(cfg.SearchURL, cfg.ChromeBin, cfg.PrimaryTimeout,
			&utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: cfg.RetryBaseDelay, Logger: logger}, logger)
	} else {
		fetcher = booking.NewHTTPFetcher(httpClient, headers, cfg.SearchURL, cfg.PrimaryTimeout)
	}

	sources := services.Chain{
		booking.NewSource(fetcher, logger),
		fallback.NewClient(httpClient, headers, fallback.Options{
			URL:      cfg.FallbackURL,
			Size:     cfg.FallbackSize,
			Timeout:  cfg.FallbackTimeout,
			Currency: cfg.DefaultCurrency,
		}, logger),
	}

	opts := services.PipelineOptions{
		Sources: sources,
		Race:    cfg.RaceSources,
		Outputs: []storage.ListingWriter{
			storage.NewCSVWriter(filepath.Join(cfg.OutputDir, cfg.CSVFile)),
			storage.NewJSONWriter(filepath.Join(cfg.OutputDir, cfg.JSONFile)),
		},
		Reporter: services.NewReporter(os.Stdout, true),
		Logger:   logger,
	}

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(ctx, cfg.DSN())
		if err != nil {
			logger.Warn("Postgres archive unavailable, continuing without it: %v", err)
		} else {
			defer pgWriter.Close()
			opts.Archiver = pgWriter
		}
	}

	outcome, err := services.NewPipeline(opts).Run(ctx, city, budget)
	if err != nil {
		logger.Error("Run failed: %v", err)
		return err
	}

	logger.Info("=== Run %s complete — %d found, %d within budget ===",
		outcome.RunID, len(outcome.Listings), len(outcome.Ranking.Filtered))
	return nil
}
