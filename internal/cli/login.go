package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/venegas/pedidos/internal/api"
)

type LoginOptions struct {
	*RootOptions
	Username string
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión contra el servidor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "user", "u", "", "usuario")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "contraseña")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runLogin(cmd *cobra.Command, opts *LoginOptions) error {

	result, err := opts.apiClient().Login(cmd.Context(), opts.Username, opts.Password)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			if statusErr.Code == 400 {
				return errors.New("usuario y contraseña requeridos")
			}
			return errors.New("credenciales incorrectas")
		}
		return fmt.Errorf("no se pudo conectar al servidor, verifica tu conexión: %w", err)
	}

	if err := opts.openSession().Save(result.Token, result.Name, result.Username); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "¡Bienvenido, %s!\n", result.Name)
	return nil
}
