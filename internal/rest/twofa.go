package rest

import (
	"context"
	"net/http"
)

// sessionHeader carries the short-lived 2FA session token on admin calls.
const sessionHeader = "X-2FA-Session"

// TwoFactorSetup is what the backend hands out when enrolment starts.
type TwoFactorSetup struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

// TwoFactorStatus reports whether 2FA is enabled for the current admin.
func (c *Client) TwoFactorStatus(ctx context.Context) (bool, error) {
	var out struct {
		Enabled      bool  `json:"enabled"`
		TwoFAEnabled *bool `json:"two_fa_enabled"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/2fa/status", nil, &out, requestOpts{auth: true}); err != nil {
		return false, err
	}
	if out.TwoFAEnabled != nil {
		return *out.TwoFAEnabled, nil
	}
	return out.Enabled, nil
}

// BeginTwoFactorSetup starts enrolment and returns the shared secret.
func (c *Client) BeginTwoFactorSetup(ctx context.Context) (TwoFactorSetup, error) {
	var out TwoFactorSetup
	if err := c.do(ctx, http.MethodPost, "/admin/2fa/setup", nil, &out, requestOpts{auth: true}); err != nil {
		return TwoFactorSetup{}, err
	}
	return out, nil
}

// VerifyTwoFactor exchanges a TOTP code for a session token.
func (c *Client) VerifyTwoFactor(ctx context.Context, code string) (string, error) {
	body := map[string]string{"code": code}
	var out struct {
		SessionToken string `json:"session_token"`
		Token        string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/2fa/verify", body, &out, requestOpts{auth: true}); err != nil {
		return "", err
	}
	if out.SessionToken != "" {
		return out.SessionToken, nil
	}
	return out.Token, nil
}

// ProbeAdminSession issues one authenticated admin request carrying the
// cached session token. A nil return confirms the session is still good.
func (c *Client) ProbeAdminSession(ctx context.Context, sessionToken string) error {
	headers := http.Header{}
	headers.Set(sessionHeader, sessionToken)
	return c.do(ctx, http.MethodGet, "/admin/session/ping", nil, nil, requestOpts{auth: true, headers: headers})
}
