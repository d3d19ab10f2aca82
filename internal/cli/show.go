package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command for one order's detail.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra el detalle de un pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id inválido %q", args[0])
			}
			return runShow(cmd, rootOpts, id)
		},
	}
}

func runShow(cmd *cobra.Command, opts *RootOptions, id int64) error {

	db, err := opts.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	order, err := db.GetOrderByID(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Pedido #%d — %s\n", order.ID, order.StatusLabel())
	fmt.Fprintf(out, "Cliente:   %s\n", order.ClientName)
	if order.ClientPhone != "" {
		fmt.Fprintf(out, "Teléfono:  %s\n", order.ClientPhone)
	}
	if order.ClientAddress != "" {
		fmt.Fprintf(out, "Dirección: %s\n", order.ClientAddress)
	}
	fmt.Fprintf(out, "Detalle:   %s\n", order.OrderDetail)
	fmt.Fprintf(out, "Pago:      %s\n", order.PaymentLabel())
	if order.Latitude != 0 || order.Longitude != 0 {
		fmt.Fprintf(out, "GPS:       %f, %f\n", order.Latitude, order.Longitude)
	}
	if order.PhotoPath != "" {
		fmt.Fprintf(out, "Foto:      %s\n", order.PhotoPath)
	}
	fmt.Fprintf(out, "Creado:    %s\n", order.CreatedAt)
	if order.ServerID != nil {
		fmt.Fprintf(out, "ID servidor: %s\n", *order.ServerID)
	}
	if order.ErrorMessage != nil {
		fmt.Fprintf(out, "Error:     %s\n", *order.ErrorMessage)
	}
	return nil
}
