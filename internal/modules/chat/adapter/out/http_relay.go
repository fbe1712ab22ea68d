package out

import (
	"context"

	chatout "psched/internal/modules/chat/port/out"
	"psched/internal/platform/rest"
)

type chatRequest struct {
	Message string `json:"message"`
	UserID  *int   `json:"user_id"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type HTTPRelay struct {
	client *rest.Client
}

func NewHTTPRelay(client *rest.Client) chatout.Relay {
	return &HTTPRelay{client: client}
}

func (r *HTTPRelay) Ask(ctx context.Context, userID int, message string) (string, error) {
	req := chatRequest{Message: message}
	if userID > 0 {
		req.UserID = &userID
	}
	var resp chatResponse
	if err := r.client.Post(ctx, "/chat", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}
