package hotelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client represents the remote booking API HTTP client.
type Client struct {
	baseURL string
	token   string
	ua      string
	http    *http.Client
}

// NewClient creates a new booking API client.
func NewClient(baseURL, token string, timeout time.Duration, ua string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		ua:      ua,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// SearchAvailability queries the inventory for rooms available for the given
// dates and guest count. Room order is preserved as returned.
func (c *Client) SearchAvailability(ctx context.Context, q AvailabilityQuery) ([]Room, error) {
	params := url.Values{}
	params.Set("fechaCheckIn", q.CheckIn)
	params.Set("fechaCheckOut", q.CheckOut)
	params.Set("numPersonas", strconv.Itoa(q.TotalGuests))

	var out availabilityResponse
	if err := c.do(ctx, http.MethodGet, "/habitaciones/disponibilidad?"+params.Encode(), "availability", nil, &out); err != nil {
		return nil, err
	}
	return out.Rooms, nil
}

// CreateReservation posts a pending reservation and returns the
// server-assigned record. A 2xx answer without a confirmation code is an
// error: the code is the guest's proof of booking.
func (c *Client) CreateReservation(ctx context.Context, req ReservationRequest) (*Reservation, error) {
	var out reservationResponse
	if err := c.do(ctx, http.MethodPost, "/reservas", "reservation", req, &out); err != nil {
		return nil, err
	}
	if out.Reservation.Code == "" {
		return nil, fmt.Errorf("hotel api reservation response missing confirmation code")
	}
	return &out.Reservation, nil
}

// CreatePaymentPreference asks the upstream to create a gateway payment
// preference for the stay and returns the redirect target.
func (c *Client) CreatePaymentPreference(ctx context.Context, req PaymentPreferenceRequest) (*PaymentPreference, error) {
	var out PaymentPreference
	if err := c.do(ctx, http.MethodPost, "/pagos/crear-preferencia", "payment preference", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, op string, in, out interface{}) error {
	if c == nil || c.http == nil {
		return fmt.Errorf("hotel api %s request error: client is nil", op)
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return fmt.Errorf("hotel api %s config error: base_url is empty", op)
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("hotel api %s request error: %w", op, err)
		}
		body = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("hotel api %s request error: %w", op, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyRequestError(ctx, op, err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if readErr == nil {
			var detail struct {
				Msg string `json:"msg"`
			}
			if json.Unmarshal(raw, &detail) == nil {
				apiErr.Message = detail.Msg
			}
		}
		return apiErr
	}

	if readErr != nil {
		return fmt.Errorf("hotel api %s response error: %w", op, readErr)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("hotel api %s response error: %w", op, err)
		}
	}
	return nil
}
