package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/common"
)

// HTTPClient talks JSON over HTTP(S) to the attendance backend. Every call
// is a single attempt; the 401 case is normalized into
// common.ErrSessionExpired plus local token invalidation.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewHTTPClient(baseURL string, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

func rolePrefix(role models.Role) string {
	if role == models.RoleAdmin {
		return "/api/admin"
	}
	return "/api/users"
}

// doJSON sends one request and decodes a 2xx JSON response into out (which
// may be nil). withAuth attaches the bearer token and enables the 401
// normalization.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, out any, withAuth bool) error {
	var token string
	if withAuth {
		token = c.tokens.AccessToken()
		if token == "" {
			return common.ErrAuthRequired
		}
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && withAuth {
		c.tokens.Invalidate(ctx)
		return common.ErrSessionExpired
	}
	if resp.StatusCode == http.StatusNotFound {
		return common.ErrorNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &common.RequestError{Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) Login(ctx context.Context, role models.Role, identifier, password string) (*LoginResult, error) {
	body := map[string]string{"identifier": identifier, "password": password}

	var result LoginResult
	err := c.doJSON(ctx, http.MethodPost, rolePrefix(role)+"/login", body, &result, false)
	if err != nil {
		var re *common.RequestError
		if errors.As(err, &re) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Register(ctx context.Context, role models.Role, form RegistrationForm) error {
	// Admin accounts are created by an already-authenticated admin; regular
	// registration is open.
	withAuth := role == models.RoleAdmin
	return c.doJSON(ctx, http.MethodPost, rolePrefix(role)+"/register", form, nil, withAuth)
}

func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refreshToken": refreshToken}
	return c.doJSON(ctx, http.MethodPost, "/api/users/logout", body, nil, false)
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.UserRecord, error) {
	var u models.UserRecord
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/profile", nil, &u, true); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, u models.UserRecord) (*models.UserRecord, error) {
	var updated models.UserRecord
	if err := c.doJSON(ctx, http.MethodPut, "/api/users/profile", u, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, role models.Role) error {
	return c.doJSON(ctx, http.MethodDelete, rolePrefix(role)+"/account", nil, nil, true)
}

type privilegesRequest struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
}

func (c *HTTPClient) UpdateAdminPrivileges(ctx context.Context, userID string, role models.Role) (*models.UserRecord, error) {
	body := privilegesRequest{UserID: userID, Role: role}

	var updated models.UserRecord
	if err := c.doJSON(ctx, http.MethodPut, "/api/admin/privileges", body, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) AttendanceHistory(ctx context.Context, period models.Period) ([]models.AttendanceRecord, error) {
	path := "/api/users/attendance/history?period=" + url.QueryEscape(string(period))

	var records []models.AttendanceRecord
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &records, true); err != nil {
		return nil, err
	}
	return records, nil
}

type markRequest struct {
	Type     models.MarkKind `json:"type"`
	Location markLocation    `json:"location"`
}

type markLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Address   string  `json:"address"`
	Timestamp string  `json:"timestamp"`
}

func (c *HTTPClient) MarkAttendance(ctx context.Context, kind models.MarkKind, sample models.LocationSample, address string, at time.Time) (*models.Receipt, error) {
	body := markRequest{
		Type: kind,
		Location: markLocation{
			Latitude:  sample.Latitude,
			Longitude: sample.Longitude,
			Accuracy:  sample.Accuracy,
			Address:   address,
			Timestamp: at.UTC().Format(time.RFC3339),
		},
	}

	var receipt models.Receipt
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/attendance", body, &receipt, true); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/healthz", nil, nil, false)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
