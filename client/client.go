// Package client is the typed consumer of the portal API: a thin HTTP
// client plus the week-editor session logic the dashboard surfaces build on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hrportal/api"
	"hrportal/pagination"
)

// APIError is any non-2xx reply. Details carries the per-day messages of a
// validation failure.
type APIError struct {
	Status  int
	Message string
	Details []string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return strings.Join(e.Details, "; ")
	}
	return e.Message
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode}
		var payload struct {
			Error  string   `json:"error"`
			Errors []string `json:"errors"`
		}
		if err := json.NewDecoder(res.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Error
			apiErr.Details = payload.Errors
		}
		if apiErr.Message == "" && len(apiErr.Details) == 0 {
			apiErr.Message = res.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) (api.Session, error) {
	var resp api.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", api.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return api.Session{}, err
	}
	c.token = resp.Token
	return resp.Session, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
	if err == nil {
		c.token = ""
	}
	return err
}

// Session returns the typed identity fields of the signed-in user.
func (c *Client) Session(ctx context.Context) (api.Session, error) {
	var s api.Session
	err := c.do(ctx, http.MethodGet, "/api/session", nil, &s)
	return s, err
}

// Week fetches the batch payload for a week start.
func (c *Client) Week(ctx context.Context, start time.Time, withHistory bool) (api.WeekResponse, error) {
	path := "/api/timesheets/week?start=" + start.Format(api.DateFormat)
	if withHistory {
		path += "&history=1"
	}
	var resp api.WeekResponse
	err := c.do(ctx, http.MethodGet, path, nil, &resp)
	return resp, err
}

func (c *Client) SaveDay(ctx context.Context, weekStart time.Time, weekday string, req api.SaveDayRequest) (api.DayRow, error) {
	path := fmt.Sprintf("/api/timesheets/week/%s/days/%s", weekStart.Format(api.DateFormat), weekday)
	var row api.DayRow
	err := c.do(ctx, http.MethodPut, path, req, &row)
	return row, err
}

func (c *Client) SaveWeek(ctx context.Context, req api.CreateWeekRequest) (api.CreateWeekResponse, error) {
	var resp api.CreateWeekResponse
	err := c.do(ctx, http.MethodPost, "/api/timesheets", req, &resp)
	return resp, err
}

func (c *Client) Submit(ctx context.Context, id uint) (api.SubmitResponse, error) {
	var resp api.SubmitResponse
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/timesheets/%d/submit", id), nil, &resp)
	return resp, err
}

func (c *Client) History(ctx context.Context, p pagination.Params) (api.HistoryPage, error) {
	path := fmt.Sprintf("/api/timesheets/history?skip=%d&limit=%d", p.Skip, p.Limit)
	var page api.HistoryPage
	err := c.do(ctx, http.MethodGet, path, nil, &page)
	return page, err
}

func (c *Client) Projects(ctx context.Context) ([]api.ProjectItem, error) {
	var items []api.ProjectItem
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &items)
	return items, err
}

// ResolveProject asks the catalog for a name or code; the server is the only
// source of truth.
func (c *Client) ResolveProject(ctx context.Context, name string) (api.ProjectItem, error) {
	var item api.ProjectItem
	err := c.do(ctx, http.MethodGet, "/api/projects/resolve?name="+url.QueryEscape(name), nil, &item)
	return item, err
}

func (c *Client) PendingTimesheets(ctx context.Context, p pagination.Params) (api.HistoryPage, error) {
	path := fmt.Sprintf("/api/approvals/timesheets?skip=%d&limit=%d", p.Skip, p.Limit)
	var page api.HistoryPage
	err := c.do(ctx, http.MethodGet, path, nil, &page)
	return page, err
}

func (c *Client) ActOnTimesheet(ctx context.Context, id uint, action, comment string) (api.TimesheetListItem, error) {
	var item api.TimesheetListItem
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/approvals/timesheets/%d", id),
		api.ApprovalActionRequest{Action: action, Comment: comment}, &item)
	return item, err
}

func (c *Client) PendingLeave(ctx context.Context, p pagination.Params) (api.LeavePage, error) {
	path := fmt.Sprintf("/api/approvals/leave?skip=%d&limit=%d", p.Skip, p.Limit)
	var page api.LeavePage
	err := c.do(ctx, http.MethodGet, path, nil, &page)
	return page, err
}

func (c *Client) ActOnLeave(ctx context.Context, id uint, action, comment string) (api.LeaveItem, error) {
	var item api.LeaveItem
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/approvals/leave/%d", id),
		api.ApprovalActionRequest{Action: action, Comment: comment}, &item)
	return item, err
}

func (c *Client) CreateLeave(ctx context.Context, req api.CreateLeaveRequest) (api.LeaveItem, error) {
	var item api.LeaveItem
	err := c.do(ctx, http.MethodPost, "/api/leave", req, &item)
	return item, err
}
