package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("bar"))
})

var expectedHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers": "*",
	"X-Frame-Options":              "ALLOWALL",
}

func assertHeaders(t *testing.T, resHeaders http.Header, expHeaders map[string]string) {
	t.Helper()
	for name, want := range expHeaders {
		assert.Equal(t, []string{want}, resHeaders.Values(name), "header %q", name)
	}
}

func TestCors_AllMethods(t *testing.T) {
	h := NewCorsMiddleware(DefaultCorsOptions()).Handler(testHandler)

	for _, method := range []string{"GET", "HEAD", "POST", "PUT", "DELETE"} {
		t.Run(method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(method, "/foo", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "bar", rec.Body.String())
			assertHeaders(t, rec.Header(), expectedHeaders)
		})
	}
}

func TestCors_Preflight(t *testing.T) {
	called := false
	h := NewCorsMiddleware(DefaultCorsOptions()).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("OPTIONS", "/does/not/exist.png", nil)
	req.Header.Set("Origin", "http://foobar.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
	assert.Equal(t, "0", rec.Header().Get("Content-Length"))
	assert.False(t, called, "preflight must not reach the next handler")
	assertHeaders(t, rec.Header(), expectedHeaders)
}

func TestCors_ErrorResponses(t *testing.T) {
	h := Handler(DefaultCorsOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assertHeaders(t, rec.Header(), expectedHeaders)
}

func TestCors_DoesNotOverwrite(t *testing.T) {
	h := NewCorsMiddleware(DefaultCorsOptions()).Handler(testHandler)

	rec := httptest.NewRecorder()
	rec.Header().Set("X-Frame-Options", "DENY")
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, []string{"DENY"}, rec.Header().Values("X-Frame-Options"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCors_Options(t *testing.T) {
	cases := []struct {
		name    string
		options CorsOptions
		headers map[string]string
	}{
		{
			"NoConfig",
			CorsOptions{
				// Intentionally left blank.
			},
			expectedHeaders,
		},
		{
			"CustomOrigins",
			CorsOptions{
				AllowedOrigins: []string{"http://foobar.com"},
			},
			map[string]string{
				"Access-Control-Allow-Origin":  "http://foobar.com",
				"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
			},
		},
		{
			"MethodsAreUppercased",
			CorsOptions{
				AllowedMethods: []string{"get", " head ", ""},
			},
			map[string]string{
				"Access-Control-Allow-Methods": "GET, HEAD",
			},
		},
		{
			"HeadersAndFrame",
			CorsOptions{
				AllowedHeaders: []string{"Content-Type", "X-Requested-With"},
				FrameOptions:   "SAMEORIGIN",
			},
			map[string]string{
				"Access-Control-Allow-Headers": "Content-Type, X-Requested-With",
				"X-Frame-Options":              "SAMEORIGIN",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewCorsMiddleware(tc.options).Handler(testHandler)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
			assertHeaders(t, rec.Header(), tc.headers)
		})
	}
}
