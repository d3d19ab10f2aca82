package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/venegas/pedidos/internal/types"
)

// NewListCommand creates the list command: every order newest first plus the
// per-status counters.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Muestra todos los pedidos y el resumen por estado",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, rootOpts)
		},
	}
}

func runList(cmd *cobra.Command, opts *RootOptions) error {

	db, err := opts.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	orders, err := db.GetAllOrders(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if len(orders) == 0 {
		fmt.Fprintln(out, "No hay pedidos todavía")
		return nil
	}

	table := tablewriter.NewTable(out)
	table.Header("ID", "Cliente", "Detalle", "Pago", "Estado", "Creado")
	for _, order := range orders {
		err := table.Append(strconv.FormatInt(order.ID, 10), order.ClientName,
			order.OrderDetail, order.PaymentLabel(), order.StatusLabel(), order.CreatedAt)
		if err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	pending, err := db.CountByStatus(ctx, types.PendingStatus)
	if err != nil {
		return err
	}
	synced, err := db.CountByStatus(ctx, types.SyncedStatus)
	if err != nil {
		return err
	}
	failed, err := db.CountByStatus(ctx, types.ErrorStatus)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "⏳ %d pendientes  ✅ %d sincronizados  ❌ %d errores\n", pending, synced, failed)
	return nil
}
