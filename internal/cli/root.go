package cli

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/venegas/pedidos/internal/api"
	"github.com/venegas/pedidos/internal/config"
	"github.com/venegas/pedidos/internal/session"
	"github.com/venegas/pedidos/internal/store"
)

// RootOptions holds global flags shared by all commands. Flags override the
// environment-driven config when set.
type RootOptions struct {
	Verbose      bool
	APIAddress   string
	DatabasePath string
	SessionPath  string

	conf *config.Config
}

// NewRootCommand creates the root command for the pedidos CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "pedidos",
		Short:         "Captura pedidos sin conexión y los sincroniza con el servidor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.NewConfig()
			if err != nil {
				return err
			}
			if opts.APIAddress != "" {
				conf.APIAddress = opts.APIAddress
			}
			if opts.DatabasePath != "" {
				conf.DatabasePath = opts.DatabasePath
			}
			if opts.SessionPath != "" {
				conf.SessionPath = opts.SessionPath
			}
			opts.conf = conf

			if opts.Verbose {
				logger.SetLevel(logger.DebugLevel)
			} else {
				logger.SetLevel(logger.WarnLevel)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.APIAddress, "api", "", "backend base address")
	cmd.PersistentFlags().StringVar(&opts.DatabasePath, "db", "", "path to the local orders database")
	cmd.PersistentFlags().StringVar(&opts.SessionPath, "session", "", "path to the session file")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))

	return cmd
}

func (o *RootOptions) openStore() (*store.Store, error) {
	return store.NewStore(o.conf.DatabasePath)
}

func (o *RootOptions) openSession() *session.Session {
	return session.NewSession(o.conf.SessionPath)
}

func (o *RootOptions) apiClient() *api.Client {
	return api.NewClient(o.conf.APIAddress, o.conf.HTTPTimeout)
}
