package jenkins

import (
	"context"
	"net/http"
	"time"
)

// Reachable reports whether the server answers at all. Anything below 500 on
// the login page counts, since 401/403 still proves the server is up.
func (c *Client) Reachable(ctx context.Context) bool {
	req, err := c.newRequest(ctx, http.MethodGet, c.server+"login", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("server %s unreachable: %v", c.server, err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}

// WhoAmI returns the id of the authenticated user.
// Anonymous sessions return "anonymous" with a nil error.
func (c *Client) WhoAmI(ctx context.Context) (string, error) {
	var me struct {
		ID       string `json:"id"`
		FullName string `json:"fullName"`
	}
	if err := c.getJSON(ctx, c.server+"me/api/json", &me); err != nil {
		return "", err
	}
	if me.ID == "" {
		return "anonymous", nil
	}
	return me.ID, nil
}

// Authenticated reports whether the configured credentials are accepted by
// the server and map to a real user.
func (c *Client) Authenticated(ctx context.Context) (string, bool) {
	user, err := c.WhoAmI(ctx)
	if err != nil {
		c.log.Debug("auth check failed: %v", err)
		return "", false
	}
	return user, user != "anonymous"
}

// Status runs both liveness checks and never fails; an unreachable server is
// itself a valid status to display.
func (c *Client) Status(ctx context.Context) ServerStatus {
	st := ServerStatus{
		URL:       c.server,
		Reachable: c.Reachable(ctx),
		CheckedAt: time.Now(),
	}
	if st.Reachable {
		st.User, st.Authenticated = c.Authenticated(ctx)
	}
	return st
}
