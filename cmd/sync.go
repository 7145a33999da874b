package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"lunchero/internal/models"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch catalog, orders and expenses and print a summary",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		a, err := newApp(ctx, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer a.close()

		a.lunches.Refresh(ctx)
		a.orders.Refresh(ctx)
		a.expenses.Refresh(ctx)
		for _, msg := range []string{a.lunches.LastError(), a.orders.LastError(), a.expenses.LastError()} {
			if msg != "" {
				fmt.Fprintln(os.Stderr, msg)
				os.Exit(1)
			}
		}

		orders := a.orders.Orders()
		bar := progressbar.Default(int64(len(orders)), "tallying orders")
		var pending, paid int
		var revenue, outstanding float64
		for _, o := range orders {
			switch o.Status {
			case models.OrderStatusPaid:
				paid++
				revenue += o.Total
			default:
				pending++
				outstanding += o.Total
			}
			bar.Add(1)
		}

		var spent float64
		for _, e := range a.expenses.Expenses() {
			spent += e.Amount
		}

		fmt.Printf("lunches: %d\n", len(a.lunches.Catalog()))
		fmt.Printf("orders:  %d (%d paid, %d pending)\n", len(orders), paid, pending)
		fmt.Printf("revenue: %.0f collected, %.0f outstanding\n", revenue, outstanding)
		fmt.Printf("spent:   %.0f across %d expenses\n", spent, len(a.expenses.Expenses()))
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
