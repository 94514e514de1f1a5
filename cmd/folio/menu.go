package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/quantfolio/folio/internal/core"
	"github.com/quantfolio/folio/internal/ledger"
	"github.com/quantfolio/folio/internal/session"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive portfolio and alert menu",
	RunE:  runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

// menuUI drives the interactive loop. All commands are also available as
// direct subcommands.
type menuUI struct {
	sess   *session.Session
	reader *bufio.Reader
	cmd    *cobra.Command
}

func runMenu(cmd *cobra.Command, args []string) error {
	sess, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ui := &menuUI{
		sess:   sess,
		reader: bufio.NewReader(os.Stdin),
		cmd:    cmd,
	}
	return ui.run()
}

func (ui *menuUI) run() error {
	fmt.Println("folio - portfolio ledger & alert engine")

	for {
		choice, err := ui.showMenu()
		if err != nil {
			return err
		}

		done, err := ui.handle(choice)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
		}
		if done {
			fmt.Println("Goodbye.")
			return nil
		}
	}
}

func (ui *menuUI) showMenu() (string, error) {
	fmt.Print(`
========= MAIN MENU =========
 1. 📊 View portfolio
 2. 🛒 Buy shares
 3. 💰 Sell shares
 4. 📈 Strategy outlook
 5. 🔔 View alerts
 6. ➕ Add alert
 7. ➖ Remove alert
 8. ✅ Check alerts
 0. 🚪 Exit
=============================
Enter your choice (0-8): `)

	line, err := ui.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (ui *menuUI) handle(choice string) (done bool, err error) {
	switch choice {
	case "1":
		printReport(ui.sess.PortfolioReport(ui.cmd.Context()))
		return false, nil
	case "2":
		return false, ui.handleTrade(ui.sess.Buy)
	case "3":
		return false, ui.handleTrade(ui.sess.Sell)
	case "4":
		return false, ui.handleOutlook()
	case "5":
		alerts, err := ui.sess.ListAlerts(ui.cmd.Context())
		if err != nil {
			return false, err
		}
		printAlerts(alerts)
		return false, nil
	case "6":
		return false, ui.handleAddAlert()
	case "7":
		return false, ui.handleRemoveAlert()
	case "8":
		evals, err := ui.sess.CheckAlerts(ui.cmd.Context())
		if err != nil {
			return false, err
		}
		printEvaluations(evals)
		return false, nil
	case "0":
		return true, nil
	default:
		fmt.Printf("Invalid choice: %s\n", choice)
		return false, nil
	}
}

func (ui *menuUI) prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := ui.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (ui *menuUI) handleTrade(trade func(ctx context.Context, ticker string, shares int64) (*ledger.Trade, error)) error {
	ticker, err := ui.prompt("Ticker: ")
	if err != nil {
		return err
	}
	raw, err := ui.prompt("Shares: ")
	if err != nil {
		return err
	}
	shares, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid share count %q", raw)
	}

	t, err := trade(ui.cmd.Context(), ticker, shares)
	if err != nil {
		return err
	}
	printTrade(t)
	return nil
}

func (ui *menuUI) handleOutlook() error {
	ticker, err := ui.prompt("Ticker: ")
	if err != nil {
		return err
	}
	names := ui.sess.Strategies().Names()
	name, err := ui.prompt(fmt.Sprintf("Strategy %v [moving_avg]: ", names))
	if err != nil {
		return err
	}
	if name == "" {
		name = "moving_avg"
	}

	result, err := ui.sess.RunStrategy(ui.cmd.Context(), name, ticker)
	if err != nil {
		return err
	}
	printOutlook(result)
	return nil
}

func (ui *menuUI) handleAddAlert() error {
	ticker, err := ui.prompt("Ticker: ")
	if err != nil {
		return err
	}
	rawThreshold, err := ui.prompt("Threshold price: ")
	if err != nil {
		return err
	}
	threshold, err := decimal.NewFromString(rawThreshold)
	if err != nil {
		return fmt.Errorf("invalid threshold %q", rawThreshold)
	}
	rawDirection, err := ui.prompt("Direction (above/below): ")
	if err != nil {
		return err
	}
	direction, err := core.ParseDirection(rawDirection)
	if err != nil {
		return err
	}

	added, err := ui.sess.AddAlert(ui.cmd.Context(), ticker, threshold, direction)
	if err != nil {
		return err
	}
	fmt.Printf("Added alert: %s\n", added)
	return nil
}

func (ui *menuUI) handleRemoveAlert() error {
	alerts, err := ui.sess.ListAlerts(ui.cmd.Context())
	if err != nil {
		return err
	}
	printAlerts(alerts)
	if len(alerts) == 0 {
		return nil
	}

	raw, err := ui.prompt("Index to remove: ")
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid index %q", raw)
	}

	removed, err := ui.sess.RemoveAlert(ui.cmd.Context(), index)
	if err != nil {
		return err
	}
	fmt.Printf("Removed alert: %s\n", removed)
	return nil
}
