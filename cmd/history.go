package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"deploykit/internal/history"
	"deploykit/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent deploys",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		path, err := history.DefaultPath()
		if err != nil {
			return err
		}
		store, err := history.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(context.Background(), limit)
		if err != nil {
			return err
		}

		styles := ui.NewStyles()
		if len(entries) == 0 {
			styles.Infof("no deploys recorded yet")
			return nil
		}

		for _, e := range entries {
			mark := styles.Success.Render("ok  ")
			if !e.Success {
				mark = styles.Error.Render("fail")
			}
			kind := "preview"
			if e.Production {
				kind = "prod"
			}
			fmt.Printf("%s  %s  %-7s  %-40s  %s\n",
				mark,
				e.DeployedAt.Local().Format(time.DateTime),
				kind,
				e.Path,
				styles.URL.Render(e.URL),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of entries to show")
	rootCmd.AddCommand(historyCmd)
}
