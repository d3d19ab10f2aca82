package types

type Status string

const (
	PendingStatus Status = "PENDING"
	SyncedStatus  Status = "SYNCED"
	ErrorStatus   Status = "ERROR"
)

type PaymentType string

const (
	PaymentCash     PaymentType = "cash"
	PaymentTransfer PaymentType = "transfer"
)

// Order is the local record of a field-captured order. ErrorMessage is set
// only when Status is ERROR, ServerID only when Status is SYNCED.
type Order struct {
	ID            int64       `db:"id"`
	ClientName    string      `db:"client_name" validate:"required"`
	ClientPhone   string      `db:"client_phone"`
	ClientAddress string      `db:"client_address"`
	OrderDetail   string      `db:"order_detail" validate:"required"`
	PaymentType   PaymentType `db:"payment_type" validate:"omitempty,oneof=cash transfer"`
	PhotoPath     string      `db:"photo_path"`
	Latitude      float64     `db:"latitude"`
	Longitude     float64     `db:"longitude"`
	Status        Status      `db:"status"`
	ErrorMessage  *string     `db:"error_message"`
	CreatedAt     string      `db:"created_at"`
	ServerID      *string     `db:"server_id"`
}

func (o Order) IsPending() bool { return o.Status == PendingStatus }
func (o Order) IsSynced() bool  { return o.Status == SyncedStatus }
func (o Order) IsError() bool   { return o.Status == ErrorStatus }

func (o Order) StatusLabel() string {
	switch o.Status {
	case SyncedStatus:
		return "Sincronizado"
	case ErrorStatus:
		return "Error"
	default:
		return "Pendiente"
	}
}

func (o Order) PaymentLabel() string {
	if o.PaymentType == PaymentTransfer {
		return "Transferencia"
	}
	return "Efectivo"
}
