package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"csnews/internal/app"
	"csnews/internal/config"
	"csnews/internal/logger"
	"csnews/internal/storage"
	"csnews/internal/ui"
)

var (
	flagLimit   int
	flagRandom  bool
	flagRefresh bool
	flagNoCache bool
	flagPlain   bool

	flagExportCSV   string
	flagExportSheet string
	flagExportLimit int
)

var rootCmd = &cobra.Command{
	Use:           "news",
	Short:         "Fetch and display the latest CS & AI news",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		renderer := ui.NewRenderer(os.Stdout, plainOutput())
		renderer.Header("Latest CS & AI News")

		spinner := ui.NewSpinner("Fetching news feeds...")
		spinner.Start()
		items, err := a.Collect(cmd.Context(), app.Options{
			Limit:   flagLimit,
			Random:  flagRandom,
			Refresh: flagRefresh,
			NoCache: flagNoCache,
		})
		spinner.Stop()
		if err != nil {
			return err
		}

		if len(items) == 0 {
			renderer.Empty()
			return nil
		}
		renderer.Items(items)
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured news sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		for _, feed := range a.Config().Feeds {
			fmt.Println(feed)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current listing to a Google Sheet or a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		items, err := a.Collect(cmd.Context(), app.Options{Limit: flagExportLimit})
		if err != nil {
			return err
		}

		store, err := storage.NewStorage(a.Config().DataDir)
		if err != nil {
			return err
		}

		if flagExportCSV != "" {
			if err := store.ExportCSV(flagExportCSV, items); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Exported %d items to %s", len(items), flagExportCSV))
			return nil
		}

		spreadsheetID := flagExportSheet
		if spreadsheetID == "" {
			if spreadsheetID, err = store.LoadSpreadsheetID(); err != nil {
				return err
			}
		}
		result, err := store.ExportToSheets(cmd.Context(), items, spreadsheetID)
		if err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("Exported %d items to %s", len(items), result.URL))
		return nil
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the news cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached source entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.ClearCache(); err != nil {
			return err
		}
		fmt.Println("Cache cleared.")
		return nil
	},
}

func newApp() (*app.App, error) {
	dataDir, err := config.DefaultDataDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

func plainOutput() bool {
	return flagPlain || !term.IsTerminal(int(os.Stdout.Fd()))
}

func printSuccess(msg string) {
	if !plainOutput() {
		msg = ui.SuccessStyle.Render(msg)
	}
	fmt.Println(msg)
}

func init() {
	rootCmd.Flags().IntVarP(&flagLimit, "limit", "l", 0, "number of news items to display")
	rootCmd.Flags().BoolVarP(&flagRandom, "random", "r", false, "shuffle news items instead of sorting by date")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "re-fetch all sources, replacing cached entries")
	rootCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "skip cache reads and writes")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "disable colors and terminal hyperlinks")

	exportCmd.Flags().StringVar(&flagExportCSV, "csv", "", "export to a local CSV file at this path")
	exportCmd.Flags().StringVar(&flagExportSheet, "sheet", "", "spreadsheet ID to export into (created when empty)")
	exportCmd.Flags().IntVar(&flagExportLimit, "limit", 20, "number of news items to export")

	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(sourcesCmd, exportCmd, cacheCmd)
}

func main() {
	logger.Init()

	if err := rootCmd.Execute(); err != nil {
		msg := fmt.Sprintf("Error: %v", err)
		if !flagPlain && term.IsTerminal(int(os.Stderr.Fd())) {
			msg = ui.ErrorStyle.Render(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
