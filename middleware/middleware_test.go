package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterInMemory(t *testing.T) {
	prev := config.RedisClient
	config.RedisClient = nil
	t.Cleanup(func() { config.RedisClient = prev })

	r := gin.New()
	r.GET("/ping", RateLimiter(2, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "pong", nil))
	})

	codes := []int{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}

func TestMemoryWindowResets(t *testing.T) {
	m := newMemoryWindow()
	if n, _ := m.hit("k", 10*time.Millisecond); n != 1 {
		t.Fatalf("first hit = %d", n)
	}
	if n, _ := m.hit("k", 10*time.Millisecond); n != 2 {
		t.Fatalf("second hit = %d", n)
	}
	time.Sleep(20 * time.Millisecond)
	if n, _ := m.hit("k", 10*time.Millisecond); n != 1 {
		t.Fatalf("hit after window = %d", n)
	}
	if n, _ := m.hit("other", time.Minute); n != 1 {
		t.Fatalf("keys must not share a window, got %d", n)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(models.ContextKeyRequestID))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" || w.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("client id not reused: body=%q header=%q", w.Body.String(), w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Body.String()) != 36 {
		t.Errorf("generated id = %q", w.Body.String())
	}
}

func TestExtractResourceType(t *testing.T) {
	const orderID = "0192b8c4-5d1e-7c3a-9f00-123456789abc"
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/admin/categories", models.ResourceTypeCategory},
		{"/api/v1/admin/categories/12", models.ResourceTypeCategory},
		{"/api/v1/admin/products/7", models.ResourceTypeProduct},
		{"/api/v1/admin/orders/" + orderID + "/status", models.ResourceTypeOrder},
		{"/api/v1/admin/me", ""},
	}
	for _, tt := range tests {
		if got := extractResourceType(tt.path); got != tt.want {
			t.Errorf("extractResourceType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsIDParam(t *testing.T) {
	tests := []struct {
		segment string
		want    bool
	}{
		{"42", true},
		{":id", true},
		{"", true},
		{"products", false},
		{"0192b8c4-5d1e-7c3a-9f00-123456789abc", true},
	}
	for _, tt := range tests {
		if got := isIDParam(tt.segment); got != tt.want {
			t.Errorf("isIDParam(%q) = %v", tt.segment, got)
		}
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{models.AdminRoleSuperAdmin, http.StatusOK},
		{models.AdminRoleAdmin, http.StatusForbidden},
		{"", http.StatusForbidden},
	}
	for _, tt := range tests {
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			if tt.role != "" {
				c.Set("adminRole", tt.role)
			}
		}, RequireSuperAdminMiddleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != tt.want {
			t.Errorf("role %q: status %d, want %d", tt.role, w.Code, tt.want)
		}
	}
}

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	r := gin.New()
	r.GET("/", AdminAuthMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d", w.Code)
	}
}

func TestAdminTokenLookup(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"none", "", "", ""},
		{"bearer header", "", "Bearer abc", "abc"},
		{"cookie wins", "from-cookie", "Bearer abc", "from-cookie"},
		{"wrong scheme", "", "Basic abc", ""},
		{"blank bearer", "", "Bearer   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: AdminTokenCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			if got := adminToken(c); got != tt.want {
				t.Errorf("adminToken = %q, want %q", got, tt.want)
			}
		})
	}
}
