package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/venegas/pedidos/internal/qr"
	"github.com/venegas/pedidos/internal/types"
	"github.com/venegas/pedidos/internal/validate"
)

const createdAtLayout = "2006-01-02 15:04:05"

type CreateOptions struct {
	*RootOptions
	ClientName    string
	ClientPhone   string
	ClientAddress string
	OrderDetail   string
	PaymentType   string
	PhotoPath     string
	Latitude      float64
	Longitude     float64
	QRContent     string
}

// NewCreateCommand creates the create command. Client data can be typed in
// through flags or pre-filled from a scanned QR payload.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Guarda un pedido nuevo como pendiente de sincronización",
		Example: `  pedidos create --name "Ana Lopez" --detail "2 cajas de agua"
  pedidos create --qr "CLIENTE=Ana|TEL=099|DIR=Calle 1" --detail "2 cajas" --payment transfer`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ClientName, "name", "", "nombre del cliente")
	cmd.Flags().StringVar(&opts.ClientPhone, "phone", "", "teléfono")
	cmd.Flags().StringVar(&opts.ClientAddress, "address", "", "dirección o referencia")
	cmd.Flags().StringVar(&opts.OrderDetail, "detail", "", "detalle del pedido")
	cmd.Flags().StringVar(&opts.PaymentType, "payment", string(types.PaymentCash), "forma de pago (cash|transfer)")
	cmd.Flags().StringVar(&opts.PhotoPath, "photo", "", "ruta local de la fotografía")
	cmd.Flags().Float64Var(&opts.Latitude, "lat", 0, "latitud GPS")
	cmd.Flags().Float64Var(&opts.Longitude, "lon", 0, "longitud GPS")
	cmd.Flags().StringVar(&opts.QRContent, "qr", "", "contenido de un QR de cliente para precargar los datos")

	return cmd
}

func runCreate(cmd *cobra.Command, opts *CreateOptions) error {

	order := types.Order{
		ClientName:    opts.ClientName,
		ClientPhone:   opts.ClientPhone,
		ClientAddress: opts.ClientAddress,
		OrderDetail:   opts.OrderDetail,
		PaymentType:   types.PaymentType(opts.PaymentType),
		PhotoPath:     opts.PhotoPath,
		Latitude:      opts.Latitude,
		Longitude:     opts.Longitude,
		CreatedAt:     time.Now().Format(createdAtLayout),
	}

	if opts.QRContent != "" {
		if !qr.LooksLikeClientQR(opts.QRContent) {
			return errors.New("el contenido no parece un QR de cliente")
		}
		data := qr.Parse(opts.QRContent)
		if !data.IsValid {
			return errors.New(data.ErrorMessage)
		}
		// explicit flags win over QR data
		if order.ClientName == "" {
			order.ClientName = data.ClientName
		}
		if order.ClientPhone == "" {
			order.ClientPhone = data.ClientPhone
		}
		if order.ClientAddress == "" {
			order.ClientAddress = data.ClientAddress
		}
	}

	if err := validate.Order(order); err != nil {
		return err
	}

	db, err := opts.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.InsertOrder(cmd.Context(), order)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pedido guardado (id %d), pendiente de sincronización\n", id)
	return nil
}
