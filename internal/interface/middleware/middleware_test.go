package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func TestBearerToken(t *testing.T) {
	cases := map[string]struct {
		token string
		ok    bool
	}{
		"":                {"", false},
		"Bearer":          {"", false},
		"Bearer ":         {"", false},
		"Basic abc":       {"", false},
		"Bearer abc.def":  {"abc.def", true},
		"bearer abc.def":  {"abc.def", true},
		"Bearer  abc.def": {"abc.def", true},
	}
	for header, want := range cases {
		tok, ok := bearerToken(header)
		assert.Equal(t, want.ok, ok, "header %q", header)
		assert.Equal(t, want.token, tok, "header %q", header)
	}
}

func realIPFor(t *testing.T, trust bool, headers map[string]string) string {
	t.Helper()
	r := gin.New()
	var got string
	r.Use(RealIP(trust))
	r.GET("/", func(c *gin.Context) { got = c.GetString("real_ip") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestRealIP(t *testing.T) {
	h := map[string]string{"X-Forwarded-For": "198.51.100.7, 10.0.0.1"}
	assert.Equal(t, "198.51.100.7", realIPFor(t, true, h))

	cf := map[string]string{"CF-Connecting-IP": "192.0.2.44", "X-Forwarded-For": "198.51.100.7"}
	assert.Equal(t, "192.0.2.44", realIPFor(t, true, cf))

	bad := map[string]string{"X-Forwarded-For": "not-an-ip"}
	assert.NotEqual(t, "not-an-ip", realIPFor(t, true, bad))
}

func TestRealIP_UntrustedIgnoresHeaders(t *testing.T) {
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	var got string
	r.Use(RealIP(false))
	r.GET("/", func(c *gin.Context) { got = c.GetString("real_ip") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.9", got)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	unreachable := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = unreachable.Close() })

	for name, rdb := range map[string]*redis.Client{"nil client": nil, "redis down": unreachable} {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.Use(RateLimit(rdb, 1, time.Minute, KeyByIP(), nil))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			for i := 0; i < 3; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
				assert.Equal(t, http.StatusOK, w.Code)
			}
		})
	}
}

func TestRateLimit_CountsAndRejects(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Use(RealIP(false))
	r.Use(RateLimit(rdb, 2, time.Minute, KeyByIP(), AllowPaths("/health")))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(path, remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i, remaining := range []string{"1", "0"} {
		w := hit("/", "192.0.2.1:1000")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, remaining, w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "60", w.Header().Get("X-RateLimit-Reset"))
	}

	w := hit("/", "192.0.2.1:1000")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body.Code)

	// other clients and allowed paths are unaffected
	assert.Equal(t, http.StatusOK, hit("/", "192.0.2.2:1000").Code)
	assert.Equal(t, http.StatusOK, hit("/health", "192.0.2.1:1000").Code)

	mr.FastForward(time.Minute)
	assert.Equal(t, http.StatusOK, hit("/", "192.0.2.1:1000").Code)
}

func TestKeyFuncs(t *testing.T) {
	r := gin.New()
	var keys []string
	r.Use(RealIP(false))
	r.GET("/notes/:id", func(c *gin.Context) {
		keys = append(keys, KeyByIP()(c), KeyByIPAndPath()(c), KeyByUserID()(c))
		c.Set(CtxUserIDKey, "user_member_acme")
		keys = append(keys, KeyByUserID()(c))
	})
	req := httptest.NewRequest(http.MethodGet, "/notes/abc", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{
		"rl:ip:192.0.2.1",
		"rl:path:/notes/:id:ip:192.0.2.1",
		"rl:user:anon:ip:192.0.2.1",
		"rl:user:user_member_acme",
	}, keys)
}

func TestAllowFuncs(t *testing.T) {
	r := gin.New()
	var private, health bool
	r.Use(RealIP(false))
	r.GET("/health", func(c *gin.Context) {
		private = AllowPrivateIP()(c)
		health = AllowPaths("/health")(c)
	})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.2.3:80"
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, private)
	assert.True(t, health)
}

func TestRecovery(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(RequestIDMiddleware(), Recovery(logger))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body["code"])
	assert.NotContains(t, w.Body.String(), "boom")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "panic recovered", hook.LastEntry().Message)
}

func TestRequestID_KeepsValidIncoming(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	const id = "5f0c6f0e-9a53-4c1e-8d3c-3b2f6a1f9e11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(HeaderRequestID))
}

func TestAccessLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(AccessLog(logger))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, 404, entry.Data["status"])
	assert.Equal(t, "/missing", entry.Data["route"])
}
