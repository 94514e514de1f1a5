package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantfolio/folio/internal/outlook"
	"github.com/quantfolio/folio/internal/session"
)

var outlookStrategy string

var outlookCmd = &cobra.Command{
	Use:   "outlook TICKER",
	Short: "Run a strategy over a ticker and interpret the latest signal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		result, err := sess.RunStrategy(cmd.Context(), outlookStrategy, args[0])
		if err != nil {
			return err
		}
		printOutlook(result)
		return nil
	},
}

func init() {
	outlookCmd.Flags().StringVarP(&outlookStrategy, "strategy", "s", "moving_avg", "strategy name")
	rootCmd.AddCommand(outlookCmd)
}

func printOutlook(result *session.StrategyResult) {
	fmt.Printf("%s / %s: %s\n", result.Ticker, result.Strategy, outlook.Decorate(result.Outlook))

	latest, ok := result.Series.Latest()
	if !ok {
		return
	}
	fmt.Printf("As of %s (close %.2f)\n", latest.Date.Format("2006-01-02"), latest.Close)
	switch result.Strategy {
	case "rsi":
		fmt.Printf("RSI: %.2f\n", latest.RSI)
	case "bollinger":
		fmt.Printf("Bands: %.2f / %.2f / %.2f\n", latest.Lower, latest.Middle, latest.Upper)
	}
}
