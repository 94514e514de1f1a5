package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/quantfolio/folio/internal/ledger"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Show holdings, cash and total value at latest prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		printReport(sess.PortfolioReport(cmd.Context()))
		return nil
	},
}

var tradePrice string

var buyCmd = &cobra.Command{
	Use:   "buy TICKER SHARES",
	Short: "Buy shares at the latest close, or at --price",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrade(cmd.Context(), args, ledger.SideBuy)
	},
}

var sellCmd = &cobra.Command{
	Use:   "sell TICKER SHARES",
	Short: "Sell shares at the latest close, or at --price",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrade(cmd.Context(), args, ledger.SideSell)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{buyCmd, sellCmd} {
		cmd.Flags().StringVarP(&tradePrice, "price", "p", "", "unit price override (defaults to the latest close)")
	}
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(sellCmd)
}

func runTrade(ctx context.Context, args []string, side ledger.Side) error {
	ticker := args[0]
	shares, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid share count %q", args[1])
	}

	sess, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	var t *ledger.Trade
	if tradePrice != "" {
		price, err := decimal.NewFromString(tradePrice)
		if err != nil {
			return fmt.Errorf("invalid price %q", tradePrice)
		}
		if side == ledger.SideBuy {
			t, err = sess.BuyAt(ticker, shares, price)
		} else {
			t, err = sess.SellAt(ticker, shares, price)
		}
		if err != nil {
			return err
		}
	} else {
		if side == ledger.SideBuy {
			t, err = sess.Buy(ctx, ticker, shares)
		} else {
			t, err = sess.Sell(ctx, ticker, shares)
		}
		if err != nil {
			return err
		}
	}
	printTrade(t)
	return nil
}

func printTrade(t *ledger.Trade) {
	verb := "Bought"
	if t.Side == ledger.SideSell {
		verb = "Sold"
	}
	fmt.Printf("%s %d %s @ %s (total %s)\n", verb, t.Shares, t.Ticker, t.UnitPrice, t.Gross)
	fmt.Printf("Now holding %d shares, cash %s\n", t.SharesAfter, t.CashAfter)
}

func printReport(report *ledger.Report) {
	if len(report.Rows) == 0 {
		fmt.Println("No holdings.")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TICKER\tSHARES\tPRICE\tVALUE\tALLOC")
		for _, row := range report.Rows {
			if row.Err != nil {
				fmt.Fprintf(w, "%s\t%d\t?\t?\tprice unavailable\n", row.Ticker, row.Shares)
				continue
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s%%\n",
				row.Ticker, row.Shares, row.Price, row.Value, row.AllocationPct)
		}
		w.Flush()
	}

	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Holdings value: %s\n", report.HoldingsValue)
	fmt.Printf("Cash:           %s\n", report.Cash)
	fmt.Printf("Total value:    %s\n", report.TotalValue)
}
