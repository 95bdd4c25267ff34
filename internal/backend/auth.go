package backend

import (
	"context"
)

// User is the dj-rest-auth user details payload.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Key string `json:"key"`
}

// Login exchanges credentials for an API token. Bad credentials come back as
// an upstream error carrying the backend's detail text.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out loginResponse
	if err := c.postJSON(ctx, "/auth/login/", loginRequest{Email: email, Password: password}, "", &out); err != nil {
		return "", err
	}
	return out.Key, nil
}

type registerRequest struct {
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

// Register creates an account. The backend owns every field-level rule; this
// side only forwards what the form collected.
func (c *Client) Register(ctx context.Context, email, password1, password2 string) error {
	return c.postJSON(ctx, "/auth/registration/", registerRequest{Email: email, Password1: password1, Password2: password2}, "", nil)
}

// CurrentUser fetches the profile behind a token, used both to render the
// header and to decide admin access.
func (c *Client) CurrentUser(ctx context.Context, token string) (User, error) {
	var u User
	err := c.getJSON(ctx, "/auth/user/", nil, token, &u)
	return u, err
}

// Logout invalidates the token server side. Best effort: the session cookie
// is cleared regardless.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.postJSON(ctx, "/auth/logout/", nil, token, nil)
}
