// Package client is a typed Go client for the hostel HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"hostel-backend/internal/model"
	"hostel-backend/internal/sensor"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls the API on behalf of one signed-in user.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the API mounted at baseURL (e.g. "http://localhost:5000/api").
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// SetToken sets the bearer token sent with every request. An empty token
// signs the client out.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &envelope) == nil {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// --- Auth ---

// RegisterInput is the body of a registration.
type RegisterInput struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
	Hostel   string     `json:"hostel,omitempty"`
	Room     string     `json:"room,omitempty"`
	Roll     string     `json:"roll,omitempty"`
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login does not store the token; call SetToken with it.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Complaints ---

// ComplaintInput is the body of a new complaint.
type ComplaintInput struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	RoomNumber  string `json:"roomNumber"`
}

func (c *Client) CreateComplaint(ctx context.Context, in ComplaintInput) (*model.Complaint, error) {
	var out struct {
		Complaint model.Complaint `json:"complaint"`
	}
	if err := c.do(ctx, http.MethodPost, "/complaints", in, &out); err != nil {
		return nil, err
	}
	return &out.Complaint, nil
}

func (c *Client) MyComplaints(ctx context.Context) ([]model.Complaint, error) {
	var out []model.Complaint
	if err := c.do(ctx, http.MethodGet, "/complaints/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AllComplaints(ctx context.Context) ([]model.Complaint, error) {
	var out []model.Complaint
	if err := c.do(ctx, http.MethodGet, "/complaints/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateComplaintStatus(ctx context.Context, id string, status model.ComplaintStatus) (*model.Complaint, error) {
	var out struct {
		Complaint model.Complaint `json:"complaint"`
	}
	body := map[string]model.ComplaintStatus{"status": status}
	if err := c.do(ctx, http.MethodPut, "/complaints/"+url.PathEscape(id)+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out.Complaint, nil
}

// --- Leave ---

// LeaveInput is the body of a new leave request. Dates are YYYY-MM-DD.
type LeaveInput struct {
	FromDate           string `json:"fromDate"`
	ToDate             string `json:"toDate"`
	Reason             string `json:"reason"`
	DestinationAddress string `json:"destinationAddress"`
}

func (c *Client) ApplyLeave(ctx context.Context, in LeaveInput) (*model.LeaveRequest, error) {
	var out struct {
		Leave model.LeaveRequest `json:"leave"`
	}
	if err := c.do(ctx, http.MethodPost, "/leave", in, &out); err != nil {
		return nil, err
	}
	return &out.Leave, nil
}

func (c *Client) MyLeaves(ctx context.Context) ([]model.LeaveRequest, error) {
	var out []model.LeaveRequest
	if err := c.do(ctx, http.MethodGet, "/leave/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AllLeaves(ctx context.Context) ([]model.LeaveRequest, error) {
	var out []model.LeaveRequest
	if err := c.do(ctx, http.MethodGet, "/leave/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateLeaveStatus(ctx context.Context, id string, status model.LeaveStatus, comment string) (*model.LeaveRequest, error) {
	var out struct {
		Leave model.LeaveRequest `json:"leave"`
	}
	body := map[string]string{"status": string(status), "wardenComment": comment}
	if err := c.do(ctx, http.MethodPut, "/leave/"+url.PathEscape(id)+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out.Leave, nil
}

// --- Notifications ---

func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var out []model.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error) {
	var out struct {
		Notification model.Notification `json:"notification"`
	}
	if err := c.do(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, &out); err != nil {
		return nil, err
	}
	return &out.Notification, nil
}

func (c *Client) Broadcast(ctx context.Context, title, message string) error {
	body := map[string]string{"title": title, "message": message}
	return c.do(ctx, http.MethodPost, "/notifications/broadcast", body, nil)
}

// --- Warden dashboard ---

func (c *Client) WardenSummary(ctx context.Context) (*model.DashboardSummary, error) {
	var out model.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/warden/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WardenRecent(ctx context.Context) (*model.RecentActivity, error) {
	var out model.RecentActivity
	if err := c.do(ctx, http.MethodGet, "/warden/recent", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Simulated sensors ---

func (c *Client) FakeHeadcount(ctx context.Context) (*sensor.Reading, error) {
	var out sensor.Reading
	if err := c.do(ctx, http.MethodGet, "/iot/fake-headcount", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PredictFood(ctx context.Context, in sensor.FoodInput) (*sensor.Prediction, error) {
	q := url.Values{}
	q.Set("headcount", strconv.FormatFloat(in.Headcount, 'f', -1, 64))
	q.Set("temperature", strconv.FormatFloat(in.Temperature, 'f', -1, 64))
	q.Set("humidity", strconv.FormatFloat(in.Humidity, 'f', -1, 64))
	q.Set("isHoliday", strconv.FormatBool(in.IsHoliday))

	var out sensor.Prediction
	if err := c.do(ctx, http.MethodGet, "/mess/predict?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
