package tabroom

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
)

const (
	report_session_login  = "session.login"
	report_session_logout = "session.logout"
)

// loginSalt reads the hidden salt and sha inputs of the login form. The form
// is always fetched fresh since the salt changes per visit.
func (c *Client) loginSalt(ctx context.Context) (salt, sha string, err error) {
	doc, err := c.get(ctx, c.urls.login(), false)
	if err != nil {
		return "", "", err
	}
	salt, ok := doc.InputValue("salt")
	if !ok {
		return "", "", &StructuralMismatchError{Page: doc.Url, Reason: "salt input not found"}
	}
	sha, ok = doc.InputValue("sha")
	if !ok {
		return "", "", &StructuralMismatchError{Page: doc.Url, Reason: "sha input not found"}
	}
	return salt, sha, nil
}

// Login logs into tabroom, logging out of the current session first. It
// returns false when tabroom rejected the credentials.
func (c *Client) Login(ctx context.Context, username, password string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	if c.IsLoggedIn() {
		c.Logout(ctx)
	}

	salt, sha, err := c.loginSalt(ctx)
	if err != nil {
		c.tel.ReportBroken(report_session_login, err)
		return false, fmt.Errorf("get login salt: %w", err)
	}

	res, err := c.do(ctx, func() (*resty.Response, error) {
		return c.request(ctx, false).
			SetFormData(map[string]string{
				"tourn_id":    "",
				"key":         "",
				"salt":        salt,
				"sha":         sha,
				"category_id": "",
				"return":      "",
				"username":    username,
				"password":    password,
			}).
			Post(c.urls.loginSave())
	})
	if err != nil {
		c.tel.ReportBroken(report_session_login, err)
		return false, fmt.Errorf("submit login: %w", err)
	}
	if res.StatusCode() != http.StatusFound {
		return false, &UnexpectedStatusError{Status: res.StatusCode()}
	}

	var cookie *http.Cookie
	for _, candidate := range res.Cookies() {
		if candidate.Name == tokenCookie {
			cookie = candidate
			break
		}
	}
	if cookie == nil {
		c.tel.ReportDebug("login rejected", username)
		return false, nil
	}
	if cookie.Value == "" {
		return false, ErrInvalidToken
	}

	token, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		c.tel.ReportWarning(report_session_login, fmt.Errorf("decode token: %w", err))
		token = cookie.Value
	}
	c.setToken(&token)
	return true, nil
}

// Logout forgets the session token and tells tabroom to end the session. It
// is a no-op when logged out, the logout request itself is best effort.
func (c *Client) Logout(ctx context.Context) {
	token, ok := c.takeToken()
	if !ok {
		return
	}

	_, err := c.do(ctx, func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetHeader("Host", c.host).
			SetCookie(&http.Cookie{Name: tokenCookie, Value: token}).
			Get(c.urls.logout())
	})
	if err != nil {
		c.tel.ReportWarning(report_session_logout, err)
	}
}
