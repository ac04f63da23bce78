package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"errcatalog/pkg/errx"
)

func header(kv ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Add(kv[i], kv[i+1])
	}
	return h
}

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name      string
		extractor Extractor
		header    http.Header
		want      Credentials
		wantCode  string
	}{
		{
			name:   "bearer token",
			header: header("Authorization", "Bearer abc"),
			want:   Credentials{Token: "abc"},
		},
		{
			name:   "bearer scheme without token",
			header: header("Authorization", "Bearer"),
			want:   Credentials{},
		},
		{
			name:   "bearer scheme with blank token",
			header: header("Authorization", "Bearer   "),
			want:   Credentials{},
		},
		{
			name:   "raw token without scheme",
			header: header("Authorization", "Bearerish"),
			want:   Credentials{Token: "Bearerish"},
		},
		{
			name:   "cookie among others",
			header: header("Cookie", "theme=dark; auth_token=xyz; lang=en"),
			want:   Credentials{Cookie: "xyz"},
		},
		{
			name:      "custom names",
			extractor: Extractor{HeaderName: "X-Api-Key", CookieName: "sid"},
			header:    header("X-Api-Key", "k1", "Cookie", "sid=s1"),
			want:      Credentials{Token: "k1", Cookie: "s1"},
		},
		{
			name:   "empty cookie value ignored",
			header: header("Cookie", "auth_token="),
			want:   Credentials{},
		},
		{
			name:     "malformed header",
			header:   header("Authorization", "Bearer \x01"),
			wantCode: "AUTH_MALFORMED_AUTH_HEADER",
		},
		{
			name:     "malformed cookies",
			header:   header("Cookie", "auth_token=\xff"),
			wantCode: "AUTH_MALFORMED_COOKIES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.extractor.Extract(tt.header)
			if tt.wantCode != "" {
				var e *errx.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, tt.wantCode, e.Code())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractor_Require(t *testing.T) {
	_, err := Extractor{}.Require(http.Header{})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "AUTH_MISSING", e.Code())
	assert.Equal(t, http.StatusUnauthorized, e.Status())
	assert.Equal(t, "The subject must be authenticated", e.Message())

	creds, err := Extractor{}.Require(header("Authorization", "Bearer t"))
	require.NoError(t, err)
	assert.False(t, creds.IsEmpty())
}
