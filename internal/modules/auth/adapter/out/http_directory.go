package out

import (
	"context"

	"psched/internal/modules/auth/domain"
	authout "psched/internal/modules/auth/port/out"
	"psched/internal/platform/rest"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type HTTPDirectory struct {
	client *rest.Client
}

func NewHTTPDirectory(client *rest.Client) authout.Directory {
	return &HTTPDirectory{client: client}
}

func (d *HTTPDirectory) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	var user userResponse
	err := d.client.Post(ctx, "/users/register", registerRequest{
		Username: reg.Username,
		Password: reg.Password,
		Name:     reg.Name,
		Email:    reg.Email,
	}, &user)
	if err != nil {
		return domain.Session{}, err
	}
	return toSession(user), nil
}

func (d *HTTPDirectory) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	var user userResponse
	err := d.client.Post(ctx, "/users/login", loginRequest{
		Username: creds.Username,
		Password: creds.Password,
	}, &user)
	if err != nil {
		return domain.Session{}, err
	}
	return toSession(user), nil
}

func toSession(user userResponse) domain.Session {
	return domain.Session{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
	}
}
