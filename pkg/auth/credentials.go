package auth

import (
	"net/http"
	"strings"

	"errcatalog/pkg/errx"
)

// Defaults used by Extractor when its names are empty.
const (
	DefaultHeaderName = "Authorization"
	DefaultCookieName = "auth_token"
)

// Credentials are the raw authentication values found on a request.
type Credentials struct {
	Token  string
	Cookie string
}

// IsEmpty reports whether neither a token nor a cookie was found.
func (c Credentials) IsEmpty() bool {
	return c.Token == "" && c.Cookie == ""
}

// Extractor reads credentials from request headers.
type Extractor struct {
	HeaderName string
	CookieName string
}

// Extract returns the token from the auth header and the value of the auth
// cookie. Missing values are not an error; malformed ones are.
func (x Extractor) Extract(h http.Header) (Credentials, error) {
	headerName := x.HeaderName
	if headerName == "" {
		headerName = DefaultHeaderName
	}
	cookieName := x.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	var creds Credentials
	if v := h.Get(headerName); v != "" {
		if !isVisibleASCII(v) {
			return Credentials{}, MalformedAuthHeader(headerName).
				WithReason("Couldn't parse auth header value")
		}
		creds.Token = bearerToken(v)
	}

	for _, raw := range h.Values("Cookie") {
		if !isVisibleASCII(raw) {
			return Credentials{}, errx.New(AuthMalformedCookies).
				WithReason("Couldn't parse request cookies")
		}
		for _, cookie := range strings.Split(raw, "; ") {
			if value, ok := strings.CutPrefix(cookie, cookieName+"="); ok && value != "" {
				creds.Cookie = value
				break
			}
		}
		if creds.Cookie != "" {
			break
		}
	}
	return creds, nil
}

// Require is Extract but fails with AUTH_MISSING when nothing was found.
func (x Extractor) Require(h http.Header) (Credentials, error) {
	creds, err := x.Extract(h)
	if err != nil {
		return Credentials{}, err
	}
	if creds.IsEmpty() {
		return Credentials{}, errx.New(AuthMissing).
			WithReason("The subject must be authenticated")
	}
	return creds, nil
}

func isVisibleASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\t' && (c < 0x20 || c > 0x7e) {
			return false
		}
	}
	return true
}

// bearerToken strips an optional "Bearer" scheme. A scheme without a
// token yields an empty token, which counts as absent.
func bearerToken(v string) string {
	v = strings.TrimSpace(v)
	if rest, ok := strings.CutPrefix(v, "Bearer"); ok && (rest == "" || rest[0] == ' ') {
		return strings.TrimSpace(rest)
	}
	return v
}
