package main

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/quantfolio/folio/internal/alert"
	"github.com/quantfolio/folio/internal/core"
)

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Manage and evaluate price alerts",
}

var alertListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		alerts, err := sess.ListAlerts(cmd.Context())
		if err != nil {
			return err
		}
		printAlerts(alerts)
		return nil
	},
}

var alertAddCmd = &cobra.Command{
	Use:   "add TICKER THRESHOLD DIRECTION",
	Short: "Add an alert (direction: above or below)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid threshold %q", args[1])
		}
		direction, err := core.ParseDirection(args[2])
		if err != nil {
			return err
		}

		sess, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		added, err := sess.AddAlert(cmd.Context(), args[0], threshold, direction)
		if err != nil {
			return err
		}
		fmt.Printf("Added alert: %s\n", added)
		return nil
	},
}

var alertRemoveCmd = &cobra.Command{
	Use:   "remove INDEX",
	Short: "Remove the alert at the given position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}

		sess, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		removed, err := sess.RemoveAlert(cmd.Context(), index)
		if err != nil {
			return err
		}
		fmt.Printf("Removed alert: %s\n", removed)
		return nil
	},
}

var alertCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate every alert against the latest prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		evals, err := sess.CheckAlerts(cmd.Context())
		if err != nil {
			return err
		}
		printEvaluations(evals)
		return nil
	},
}

func init() {
	alertCmd.AddCommand(alertListCmd)
	alertCmd.AddCommand(alertAddCmd)
	alertCmd.AddCommand(alertRemoveCmd)
	alertCmd.AddCommand(alertCheckCmd)
	rootCmd.AddCommand(alertCmd)
}

func printAlerts(alerts []core.Alert) {
	if len(alerts) == 0 {
		fmt.Println("No alerts configured.")
		return
	}
	for i, a := range alerts {
		fmt.Printf("[%d] %s\n", i, a)
	}
}

func printEvaluations(evals []alert.Evaluation) {
	if len(evals) == 0 {
		fmt.Println("No alerts to check.")
		return
	}
	for _, ev := range evals {
		switch {
		case ev.Err != nil:
			fmt.Printf("[%d] %s: check failed (%v)\n", ev.Index, ev.Alert, ev.Err)
		case ev.Triggered:
			fmt.Printf("[%d] 🚨 TRIGGERED %s (price %s)\n", ev.Index, ev.Alert, ev.Price)
		default:
			fmt.Printf("[%d] %s (price %s)\n", ev.Index, ev.Alert, ev.Price)
		}
	}
}
