package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rl1809/grocery-stock/internal/core/domain"
	"github.com/rl1809/grocery-stock/internal/core/service"
)

var (
	moveKind      string
	moveRequestID string
)

var moveCmd = &cobra.Command{
	Use:   "move <product> <quantity>",
	Short: "Register a stock entry or exit",
	Long: `Register a stock entry or exit for one product and save the workbook.

The product name must match the sheet exactly. Quantity must be positive;
the direction comes from --kind (in/entrada or out/saida).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[1], domain.ErrInvalidQuantity)
		}
		kind, err := domain.ParseMovementKind(moveKind)
		if err != nil {
			return err
		}

		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Service.Move(cmd.Context(), service.MovementRequest{
			RequestID: moveRequestID,
			Product:   args[0],
			Quantity:  quantity,
			Kind:      kind,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd, result.Movement)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n",
			result.Movement.Product, result.Movement.StockBefore, result.Movement.StockAfter)
		return nil
	},
}

func init() {
	moveCmd.Flags().StringVarP(&moveKind, "kind", "k", "in", "Movement direction: in/entrada or out/saida")
	moveCmd.Flags().StringVar(&moveRequestID, "request-id", "", "Idempotency key; a repeated key is rejected")
	rootCmd.AddCommand(moveCmd)
}
