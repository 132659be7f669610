package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"praisetabernacle/internal/content"
	"praisetabernacle/internal/services"
)

var (
	promiseDate string
	promiseJSON bool
)

var promiseCmd = &cobra.Command{
	Use:   "promise",
	Short: "Print the daily promise for today or --date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		loc, err := time.LoadLocation(cfg.SiteTimezone)
		if err != nil {
			return err
		}
		catalog, err := content.Load(cfg.ContentDir, loc)
		if err != nil {
			return err
		}
		res, err := services.NewPromiseService(catalog.Promises(), loc).ForDate(cmd.Context(), promiseDate)
		if err != nil {
			return fmt.Errorf("date %q: %w", promiseDate, err)
		}

		out := cmd.OutOrStdout()
		if promiseJSON {
			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}
		fmt.Fprintf(out, "%s  #%d  %s\n", res.ISODate, res.Index, res.Promise.Reference)
		if res.Promise.TextEn != "" {
			fmt.Fprintln(out, res.Promise.TextEn)
		}
		if res.Promise.TextTa != "" {
			fmt.Fprintln(out, res.Promise.TextTa)
		}
		return nil
	},
}

func init() {
	promiseCmd.Flags().StringVar(&promiseDate, "date", "", "calendar date YYYY-MM-DD (default today in SITE_TIMEZONE)")
	promiseCmd.Flags().BoolVar(&promiseJSON, "json", false, "output as JSON")
}
