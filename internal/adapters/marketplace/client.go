package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"provider-dashboard/internal/platform/httpclient"
	"provider-dashboard/internal/ports/marketplace"
)

// Config del cliente hacia el backend del marketplace.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implementa marketplace.API sobre la REST API del marketplace.
// Normaliza todo fallo de transporte a los outcomes tipados del port:
// nada burbujea como error crudo de http.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// NewClientWithTransport permite inyectar un RoundTripper (tests).
func NewClientWithTransport(cfg Config, tr http.RoundTripper) (*Client, error) {
	hc, err := httpclient.NewWithTransport(cfg.BaseURL, cfg.Timeout, tr)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

func (c *Client) GetProvider(ctx context.Context, token, providerID string) (marketplace.ProviderRecord, error) {
	var out marketplace.ProviderRecord
	err := c.http.DoJSON(ctx, http.MethodGet, "/booking/provider/"+providerID, token, nil, &out)
	if err != nil {
		return marketplace.ProviderRecord{}, normalize(err)
	}
	return out, nil
}

func (c *Client) ListBookings(ctx context.Context, token, providerID string) ([]marketplace.BookingRecord, error) {
	var out []marketplace.BookingRecord
	err := c.http.DoJSON(ctx, http.MethodGet, "/booking/booking/provider/"+providerID, token, nil, &out)
	if err != nil {
		return nil, normalize(err)
	}
	return out, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, token, bookingID, status string) error {
	in := map[string]string{"status": status}
	err := c.http.DoJSON(ctx, http.MethodPut, "/booking/status/"+bookingID, token, in, nil)
	if err != nil {
		// Caso especial: un 403 cuyo mensaje indica que el servicio no está
		// aprobado NO es un problema de sesión sino un bloqueo administrativo.
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusForbidden {
			if msg := extractMessage(httpErr.Body); strings.Contains(strings.ToLower(msg), "not approved") {
				return marketplace.ErrServiceNotApproved
			}
		}
		return normalize(err)
	}
	return nil
}

type listServicesResponse struct {
	Services []marketplace.ServiceRecord `json:"services"`
}

type serviceResponse struct {
	Service marketplace.ServiceRecord `json:"service"`
}

func (c *Client) ListServices(ctx context.Context, token, providerID string) ([]marketplace.ServiceRecord, error) {
	var out listServicesResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/services/"+providerID, token, nil, &out)
	if err != nil {
		return nil, normalize(err)
	}
	return out.Services, nil
}

func (c *Client) CreateService(ctx context.Context, token string, in marketplace.ServiceInput) (marketplace.ServiceRecord, error) {
	var out serviceResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/services", token, in, &out)
	if err != nil {
		return marketplace.ServiceRecord{}, normalize(err)
	}
	return out.Service, nil
}

func (c *Client) UpdateService(ctx context.Context, token, serviceID string, in marketplace.ServiceInput) (marketplace.ServiceRecord, error) {
	var out serviceResponse
	err := c.http.DoJSON(ctx, http.MethodPatch, "/services/"+serviceID, token, in, &out)
	if err != nil {
		return marketplace.ServiceRecord{}, normalize(err)
	}
	return out.Service, nil
}

func (c *Client) DeleteService(ctx context.Context, token, serviceID string) error {
	if err := c.http.DoJSON(ctx, http.MethodDelete, "/services/"+serviceID, token, nil, nil); err != nil {
		return normalize(err)
	}
	return nil
}

// normalize mapea errores de transporte al taxonomy del port:
// 401/403 => sesión inválida; 404 => not found; el resto => UpstreamError
// reintentable con el mensaje del payload si existe.
func normalize(err error) error {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized:
			return marketplace.ErrSessionInvalid
		case http.StatusForbidden:
			return &marketplace.ForbiddenError{Message: extractMessageOrEmpty(httpErr.Body)}
		case http.StatusNotFound:
			return marketplace.ErrNotFound
		}
		return &marketplace.UpstreamError{
			Status:  httpErr.StatusCode,
			Message: extractMessage(httpErr.Body),
		}
	}
	return &marketplace.UpstreamError{Status: 0, Message: err.Error()}
}

// extractMessage saca el mensaje humano del payload de error del server,
// o un default si no hay nada usable.
func extractMessage(body []byte) string {
	const def = "unexpected marketplace error"
	if m := extractMessageOrEmpty(body); m != "" {
		return m
	}
	return def
}

// El marketplace no es consistente: a veces "message", a veces "msg" o "error".
func extractMessageOrEmpty(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, m := range []string{payload.Message, payload.Msg, payload.Error} {
		if strings.TrimSpace(m) != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}
