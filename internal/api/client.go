package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/venegas/pedidos/internal/types"
)

const (
	loginPath  = "/api/v1/auth/login"
	ordersPath = "/api/v1/orders"
)

// Client talks to the remote order backend. The timeout bounds every call,
// including the multipart upload leg.
type Client struct {
	http *resty.Client
}

var ErrEmptyToken = errors.New("server response contained no token")

// StatusError is any non-2xx response from the backend. 401 specifically
// means the credential was rejected.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

func (e *StatusError) IsUnauthorized() bool {
	return e.Code == http.StatusUnauthorized
}

type LoginResponse struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type orderResponse struct {
	ServerID string `json:"serverId"`
}

func NewClient(address string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(address).
			SetTimeout(timeout),
	}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username string, password string) (*LoginResponse, error) {

	body := map[string]string{
		"username": username,
		"password": password,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&LoginResponse{}).
		Post(loginPath)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w", &StatusError{Code: resp.StatusCode()})
	}

	result := resp.Result().(*LoginResponse)
	if result.Token == "" {
		return nil, fmt.Errorf("%w", ErrEmptyToken)
	}
	return result, nil
}

// CreateOrder uploads one order as a multipart form, attaching the photo when
// its file still exists. A recorded path that no longer resolves is sent
// without an attachment. Returns the server-assigned id.
func (c *Client) CreateOrder(ctx context.Context, bearer string, order types.Order) (string, error) {

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", bearer).
		SetHeader("X-Idempotency-Key", uuid.NewString()).
		SetMultipartFormData(map[string]string{
			"client_name":    order.ClientName,
			"client_phone":   order.ClientPhone,
			"client_address": order.ClientAddress,
			"order_detail":   order.OrderDetail,
			"payment_type":   string(order.PaymentType),
			"latitude":       strconv.FormatFloat(order.Latitude, 'f', -1, 64),
			"longitude":      strconv.FormatFloat(order.Longitude, 'f', -1, 64),
			"local_id":       strconv.FormatInt(order.ID, 10),
			"created_at":     order.CreatedAt,
		}).
		SetResult(&orderResponse{})

	if order.PhotoPath != "" {
		if _, err := os.Stat(order.PhotoPath); err == nil {
			req.SetFile("photo", order.PhotoPath)
		} else {
			logger.Warningf("Photo %s for order %d not found, sending without attachment", order.PhotoPath, order.ID)
		}
	}

	resp, err := req.Post(ordersPath)
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("%w", &StatusError{Code: resp.StatusCode()})
	}

	return resp.Result().(*orderResponse).ServerID, nil
}
