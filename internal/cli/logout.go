package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión local",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.openSession().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
			return nil
		},
	}
}
