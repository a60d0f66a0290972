package http

import (
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/application/usecases/queries"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/client"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewClient is the request body for client registration.
type NewClient struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
}

// Client is the JSON representation of a registered client.
type Client struct {
	ID         string    `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewDriver is the request body for driver registration.
type NewDriver struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

// DriverProfile is the request body for a driver profile update.
// Empty fields leave the stored values unchanged.
type DriverProfile struct {
	Phone        string `json:"phone"`
	VehicleBrand string `json:"vehicle_brand"`
	VehicleModel string `json:"vehicle_model"`
	VehicleColor string `json:"vehicle_color"`
	VehiclePlate string `json:"vehicle_plate"`
}

// DriverStatus is the request body for blocking or unblocking a driver.
type DriverStatus struct {
	Status string `json:"status"`
}

// Driver is the JSON representation of a driver.
type Driver struct {
	ID            string    `json:"id"`
	TelegramID    int64     `json:"telegram_id"`
	Username      string    `json:"username"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         string    `json:"phone,omitempty"`
	VehicleBrand  string    `json:"vehicle_brand,omitempty"`
	VehicleModel  string    `json:"vehicle_model,omitempty"`
	VehicleColor  string    `json:"vehicle_color,omitempty"`
	VehiclePlate  string    `json:"vehicle_plate,omitempty"`
	AccountStatus string    `json:"account_status"`
	Busy          bool      `json:"busy"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewOrder is the request body for placing an order.
type NewOrder struct {
	ClientID    string `json:"client_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Comment     string `json:"comment"`
}

// AssignOrder is the request body for claiming an order.
type AssignOrder struct {
	DriverID string `json:"driver_id"`
	Actor    string `json:"actor"`
}

// FinishOrder is the request body for completing or cancelling an order.
type FinishOrder struct {
	Actor string `json:"actor"`
}

// Order is the JSON representation of an order.
type Order struct {
	ID           string     `json:"id"`
	ClientID     string     `json:"client_id"`
	DriverID     *string    `json:"driver_id,omitempty"`
	Origin       string     `json:"origin"`
	Destination  string     `json:"destination"`
	Comment      string     `json:"comment,omitempty"`
	Status       string     `json:"status"`
	CancelReason string     `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// AuditEntry is the JSON representation of an audit log record.
type AuditEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	OrderID   *string   `json:"order_id,omitempty"`
	DriverID  *string   `json:"driver_id,omitempty"`
	ClientID  *string   `json:"client_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats is the JSON representation of the service counters.
type Stats struct {
	OrdersTotal     int `json:"orders_total"`
	OrdersActive    int `json:"orders_active"`
	OrdersCompleted int `json:"orders_completed"`
	OrdersCancelled int `json:"orders_cancelled"`
	DriversTotal    int `json:"drivers_total"`
	DriversActive   int `json:"drivers_active"`
	DriversBusy     int `json:"drivers_busy"`
	ClientsTotal    int `json:"clients_total"`
}

func orderJSON(resp queries.OrderResponse) Order {
	result := Order{
		ID:           resp.ID.String(),
		ClientID:     resp.ClientID.String(),
		Origin:       resp.Origin,
		Destination:  resp.Destination,
		Comment:      resp.Comment,
		Status:       resp.Status.String(),
		CancelReason: resp.CancelReason.String(),
		CreatedAt:    resp.CreatedAt,
		AssignedAt:   resp.AssignedAt,
		FinishedAt:   resp.FinishedAt,
	}
	if resp.DriverID != nil {
		id := resp.DriverID.String()
		result.DriverID = &id
	}
	return result
}

func driverJSON(resp queries.DriverResponse) Driver {
	return Driver{
		ID:            resp.ID.String(),
		TelegramID:    resp.TelegramID,
		Username:      resp.Username,
		FirstName:     resp.FirstName,
		LastName:      resp.LastName,
		Phone:         resp.Phone,
		VehicleBrand:  resp.VehicleBrand,
		VehicleModel:  resp.VehicleModel,
		VehicleColor:  resp.VehicleColor,
		VehiclePlate:  resp.VehiclePlate,
		AccountStatus: resp.AccountStatus.String(),
		Busy:          resp.Busy,
		CreatedAt:     resp.CreatedAt,
	}
}

func clientJSON(resp queries.ClientResponse) Client {
	return Client{
		ID:         resp.ID.String(),
		TelegramID: resp.TelegramID,
		Username:   resp.Username,
		FirstName:  resp.FirstName,
		LastName:   resp.LastName,
		Phone:      resp.Phone,
		CreatedAt:  resp.CreatedAt,
	}
}

func auditEntryJSON(resp queries.AuditEntryResponse) AuditEntry {
	result := AuditEntry{
		ID:        resp.ID.String(),
		Action:    resp.Action.String(),
		Detail:    resp.Detail,
		CreatedAt: resp.CreatedAt,
	}
	if resp.OrderID != nil {
		id := resp.OrderID.String()
		result.OrderID = &id
	}
	if resp.DriverID != nil {
		id := resp.DriverID.String()
		result.DriverID = &id
	}
	if resp.ClientID != nil {
		id := resp.ClientID.String()
		result.ClientID = &id
	}
	return result
}

func clientAggregateJSON(c *client.Client) Client {
	return Client{
		ID:         c.ID().String(),
		TelegramID: c.TelegramID(),
		Username:   c.Username(),
		FirstName:  c.FirstName(),
		LastName:   c.LastName(),
		Phone:      c.Phone(),
		CreatedAt:  c.CreatedAt(),
	}
}

func driverAggregateJSON(d *driver.Driver) Driver {
	return Driver{
		ID:            d.ID().String(),
		TelegramID:    d.TelegramID(),
		Username:      d.Username(),
		FirstName:     d.FirstName(),
		LastName:      d.LastName(),
		Phone:         d.Phone(),
		VehicleBrand:  d.VehicleBrand(),
		VehicleModel:  d.VehicleModel(),
		VehicleColor:  d.VehicleColor(),
		VehiclePlate:  d.VehiclePlate(),
		AccountStatus: d.AccountStatus().String(),
		Busy:          d.IsBusy(),
		CreatedAt:     d.CreatedAt(),
	}
}

func statsJSON(resp queries.GetStatsQueryResponse) Stats {
	return Stats{
		OrdersTotal:     resp.OrdersTotal,
		OrdersActive:    resp.OrdersActive,
		OrdersCompleted: resp.OrdersCompleted,
		OrdersCancelled: resp.OrdersCancelled,
		DriversTotal:    resp.DriversTotal,
		DriversActive:   resp.DriversActive,
		DriversBusy:     resp.DriversBusy,
		ClientsTotal:    resp.ClientsTotal,
	}
}
