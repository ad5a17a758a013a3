// Package directory implements the HTTP client for the remote user and
// bank account directory. The directory is the source of truth for user
// records; the session core re-validates against it on every sensitive
// operation.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pocketbank/internal/models"
)

// Client talks to the directory API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the API at baseURL, e.g.
// "http://localhost:8080/api/v1". If hc is nil a client with a 30s
// transport-level timeout is used; callers bound individual calls
// with contexts.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: hc}
}

// CreateUser registers a new user in the directory.
// Returns models.ErrDuplicateUsername on a username conflict and
// models.ErrRegistrationFailed on any other failure.
func (c *Client) CreateUser(ctx context.Context, name, username, password string) (*models.User, error) {
	body := map[string]string{"name": name, "username": username, "password": password}

	var created models.DirectoryUser
	status, err := c.post(ctx, "/user", body, &created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRegistrationFailed, err)
	}
	switch {
	case status == http.StatusConflict:
		return nil, models.ErrDuplicateUsername
	case status != http.StatusCreated && status != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", models.ErrRegistrationFailed, status)
	}

	return created.User(), nil
}

// FindByCredentials fetches the user collection and performs a linear match
// on username and password, the way the original mock API was consumed.
// Returns models.ErrInvalidCredentials when no entry matches and
// models.ErrLoginFailed when the directory cannot be reached.
func (c *Client) FindByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	var users []models.DirectoryUser
	status, err := c.get(ctx, "/user", &users)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrLoginFailed, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", models.ErrLoginFailed, status)
	}

	for i := range users {
		if users[i].Username == username && users[i].Password == password {
			return users[i].User(), nil
		}
	}
	return nil, models.ErrInvalidCredentials
}

// GetByID returns the full directory record for id, password included.
// Returns models.ErrUserNotFound when the directory reports 404.
func (c *Client) GetByID(ctx context.Context, id string) (*models.DirectoryUser, error) {
	var u models.DirectoryUser
	status, err := c.get(ctx, "/user/"+id, &u)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, models.ErrUserNotFound
	case status != http.StatusOK:
		return nil, fmt.Errorf("directory: unexpected status %d", status)
	}
	return &u, nil
}

// ValidateExists reports whether the user with the given id still exists.
// A 404 yields (false, nil); transport failures are returned as errors so
// callers do not mistake an unreachable directory for a deleted account.
func (c *Client) ValidateExists(ctx context.Context, id string) (bool, error) {
	_, err := c.GetByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, models.ErrUserNotFound) {
		return false, nil
	}
	return false, err
}

// ListAccounts returns the bank accounts owned by userID. The API exposes
// the whole collection; filtering happens here.
func (c *Client) ListAccounts(ctx context.Context, userID string) ([]models.BankAccount, error) {
	var all []models.BankAccount
	status, err := c.get(ctx, "/bank-accounts", &all)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFetchAccountsFailed, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", models.ErrFetchAccountsFailed, status)
	}

	var own []models.BankAccount
	for _, a := range all {
		if a.UserID == userID {
			own = append(own, a)
		}
	}
	return own, nil
}

// AppendAccount creates a bank account for userID and returns the record
// with the directory-assigned id. Returns models.ErrUserNotFound when the
// directory rejects the owner and models.ErrAddAccountFailed otherwise.
func (c *Client) AppendAccount(ctx context.Context, userID string, draft models.BankAccount) (*models.BankAccount, error) {
	draft.UserID = userID

	var created models.BankAccount
	status, err := c.post(ctx, "/bank-accounts", draft, &created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrAddAccountFailed, err)
	}
	switch {
	case status == http.StatusNotFound:
		return nil, models.ErrUserNotFound
	case status != http.StatusCreated && status != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", models.ErrAddAccountFailed, status)
	}
	return &created, nil
}

// get issues a GET request and decodes a 2xx JSON body into out.
// The status code is always returned when the round trip succeeds.
func (c *Client) get(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

// post issues a POST request with a JSON body and decodes a 2xx JSON
// response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) (int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}
