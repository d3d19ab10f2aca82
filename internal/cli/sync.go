package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/venegas/pedidos/internal/engine"
	"github.com/venegas/pedidos/internal/types"
)

// NewSyncCommand creates the sync command: one sequential pass over the
// pending orders.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Envía los pedidos pendientes al servidor, uno a uno",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, rootOpts)
		},
	}
}

func runSync(cmd *cobra.Command, opts *RootOptions) error {

	db, err := opts.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	// Ctrl-C stops between orders; already-sent orders keep their outcome
	ctx, stop := signal.NotifyContext(parentCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	pending, err := db.CountByStatus(ctx, types.PendingStatus)
	if err != nil {
		return err
	}
	if pending == 0 {
		fmt.Fprintln(out, "✅ No hay pedidos pendientes de sincronización")
		return nil
	}
	fmt.Fprintf(out, "Se enviarán %d pedido(s) al servidor...\n", pending)

	eng := engine.NewEngine(db, opts.apiClient(), opts.openSession())

	report, err := eng.Run(ctx)
	switch {
	case errors.Is(err, engine.ErrSessionExpired):
		return errors.New("tu sesión expiró, vuelve a iniciar sesión")
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(out, "Sincronización interrumpida")
	case err != nil:
		return err
	}

	fmt.Fprintf(out, "Sincronización completada:\n✅ %d exitosos\n❌ %d errores\n", report.Success, report.Errors)
	return nil
}
