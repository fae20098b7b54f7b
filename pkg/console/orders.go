package console

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/femi9outfit/storefront/pkg/orders"
	"github.com/femi9outfit/storefront/pkg/root"
	"github.com/spf13/cobra"
)

var (
	orderFile    string
	sessionEmail string
)

var placeOrderCmd = &cobra.Command{
	Use:   "orders:place",
	Short: "Create an order from a JSON checkout payload and send its mails",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readOrderRequest(cmd, orderFile)
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		svc, err := a.orderService(cmd.Context())
		if err != nil {
			return err
		}
		order, err := svc.PlaceOrder(cmd.Context(), req, sessionEmail)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), order)
	},
}

var orderStatusCmd = &cobra.Command{
	Use:   "orders:status <order-id> <status>",
	Short: "Change an order's status; confirming an order mails the customer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := orders.ParseStatus(args[1]); err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		svc, err := a.orderService(cmd.Context())
		if err != nil {
			return err
		}
		order, err := svc.UpdateStatus(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), order)
	},
}

// readOrderRequest decodes the checkout payload from path, or stdin for "-".
func readOrderRequest(cmd *cobra.Command, path string) (orders.CreateOrderRequest, error) {
	var req orders.CreateOrderRequest

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, err
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("%w: %v", orders.ErrInvalidOrder, err)
	}
	return req, req.Validate()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	placeOrderCmd.Flags().StringVar(&orderFile, "file", "-", "checkout payload JSON file, - for stdin")
	placeOrderCmd.Flags().StringVar(&sessionEmail, "email", "", "email of the signed-in customer; overrides customer_email")

	root.GetRoot().AddCommand(placeOrderCmd, orderStatusCmd)
}
