package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rl1809/grocery-stock/internal/core/domain"
	"github.com/rl1809/grocery-stock/internal/core/service"
)

var stressRequests int

var stressCmd = &cobra.Command{
	Use:   "stress <product>",
	Short: "Fire concurrent exits at one product",
	Long: `Fire concurrent single-unit exits at one product and check that the
number of successful exits equals the starting stock. Run it against a copy
of the workbook: it empties the product's stock.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		product := args[0]

		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		initial, err := stockOf(cmd, a.Service, product)
		if err != nil {
			return err
		}

		var successCount atomic.Int32
		var failCount atomic.Int32

		var wg sync.WaitGroup
		start := time.Now()

		for i := 0; i < stressRequests; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				_, err := a.Service.Move(ctx, service.MovementRequest{
					RequestID: uuid.NewString(),
					Product:   product,
					Quantity:  decimal.NewFromInt(1),
					Kind:      domain.MovementOut,
				})
				if err == nil {
					successCount.Add(1)
				} else {
					failCount.Add(1)
				}
			}()
		}

		wg.Wait()
		elapsed := time.Since(start)

		final, err := stockOf(cmd, a.Service, product)
		if err != nil {
			return err
		}

		success := int64(successCount.Load())
		expected := min(initial.IntPart(), int64(stressRequests))

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "========== STRESS TEST RESULTS ==========")
		fmt.Fprintf(out, "Initial Stock:    %s\n", initial)
		fmt.Fprintf(out, "Total Requests:   %d\n", stressRequests)
		fmt.Fprintf(out, "Successful:       %d\n", success)
		fmt.Fprintf(out, "Failed:           %d\n", failCount.Load())
		fmt.Fprintf(out, "Final Stock:      %s\n", final)
		fmt.Fprintf(out, "Duration:         %v\n", elapsed)
		fmt.Fprintln(out, "==========================================")

		if success != expected || !final.Equal(initial.Sub(decimal.NewFromInt(success))) {
			return fmt.Errorf("expected %d successful exits, got %d (final stock %s)", expected, success, final)
		}
		fmt.Fprintln(out, "PASS")
		return nil
	},
}

func stockOf(cmd *cobra.Command, svc *service.InventoryService, product string) (decimal.Decimal, error) {
	table, err := svc.Table(cmd.Context(), "")
	if err != nil {
		return decimal.Decimal{}, err
	}
	idx, ok := table.Find(product)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, product)
	}
	return table.Rows[idx].StockQty.Decimal, nil
}

func init() {
	stressCmd.Flags().IntVarP(&stressRequests, "requests", "n", 50, "Number of concurrent exits")
	rootCmd.AddCommand(stressCmd)
}
