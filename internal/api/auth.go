package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/spec-kit/hashtagpe-console/pkg/util"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// knownAuthCodes lets newer backends short-circuit the message
// classifier by sending a stable code in the error envelope.
var knownAuthCodes = map[string]util.AuthErrorCode{
	string(util.AuthCodeInvalidCredentials): util.AuthCodeInvalidCredentials,
	string(util.AuthCodeUserNotFound):       util.AuthCodeUserNotFound,
	string(util.AuthCodeAccountInactive):    util.AuthCodeAccountInactive,
}

// ExchangeCredentials performs the credential exchange. Rejections come
// back as *util.AuthError carrying the backend message verbatim plus a
// stable code for callers to branch on.
func (c *Client) ExchangeCredentials(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/users/login", loginRequest{Email: email, Password: password}, &resp, false)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			code, ok := knownAuthCodes[apiErr.Code]
			if !ok {
				code = util.ClassifyAuthMessage(apiErr.Message)
			}
			return "", util.NewAuthError(code, apiErr.Message, err)
		}
		return "", util.NewAuthError(util.AuthCodeExchangeFailed, "", err)
	}

	if resp.Token == "" {
		return "", util.NewAuthError(util.AuthCodeExchangeFailed, "exchange returned no token", nil)
	}
	return resp.Token, nil
}
