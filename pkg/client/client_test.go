package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/trendlens/trendlens/pkg/domain"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token" {
			http.NotFound(w, r)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q, want form encoding", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() error: %v", err)
		}
		if r.PostForm.Get("username") != "ana@example.com" {
			t.Errorf("username = %q, want %q", r.PostForm.Get("username"), "ana@example.com")
		}
		if r.PostForm.Get("password") != "correct-horse" {
			t.Errorf("password = %q, want %q", r.PostForm.Get("password"), "correct-horse")
		}
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok-123", TokenType: "bearer"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	tok, err := c.Login(context.Background(), "ana@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if tok.AccessToken != "tok-123" {
		t.Errorf("AccessToken = %q, want %q", tok.AccessToken, "tok-123")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Login(context.Background(), "ana@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error for rejected credentials")
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("IsStatus(err, 401) = false, err = %v", err)
	}
	// The server's message must survive wrapping verbatim.
	if got := Detail(err); got != "Incorrect email or password" {
		t.Errorf("Detail(err) = %q, want server message verbatim", got)
	}
}

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			http.NotFound(w, r)
			return
		}
		var body domain.Credentials
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode register body: %v", err)
		}
		if body.Email != "ana@example.com" || body.Password != "correct-horse" {
			t.Errorf("body = %+v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if err := c.Register(context.Background(), "ana@example.com", "correct-horse"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Email already registered"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.Register(context.Background(), "ana@example.com", "correct-horse")
	if err == nil {
		t.Fatal("expected error for duplicate registration")
	}
	if got := Detail(err); got != "Email already registered" {
		t.Errorf("Detail(err) = %q, want server message verbatim", got)
	}
}

func TestInterestOverTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trends/interest-over-time" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"}) //nolint:errcheck
			return
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		if body["keyword"] != "iPhone" {
			t.Errorf("keyword = %q, want %q", body["keyword"], "iPhone")
		}
		w.Write([]byte(`[{"date":"2024-01-01","value":10},{"date":"2024-01-08","value":20}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("test-token"))
	points, err := c.InterestOverTime(context.Background(), "iPhone")
	if err != nil {
		t.Fatalf("InterestOverTime() error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	// Input order is preserved, never re-sorted.
	if points[0].Date.Label() != "2024-01-01" || points[1].Value != 20 {
		t.Errorf("points = %+v", points)
	}
}

func TestUnauthenticatedRequestOmitsHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken(""))
	if _, err := c.InterestOverTime(context.Background(), "iPhone"); err != nil {
		t.Fatalf("InterestOverTime() error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty for unauthenticated client", gotAuth)
	}
}

func TestForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trends/forecast" {
			http.NotFound(w, r)
			return
		}
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode forecast body: %v", err)
		}
		if string(body["model"]) != `"xgboost"` {
			t.Errorf("model = %s, want xgboost", body["model"])
		}
		// promotion_dates is always present, even when empty.
		if _, ok := body["promotion_dates"]; !ok {
			t.Error("promotion_dates missing from request body")
		}
		w.Write([]byte(`[{"ds":"2024-01-15","yhat":30.5}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	points, err := c.Forecast(context.Background(), ForecastRequest{Keyword: "iPhone", Model: "xgboost"})
	if err != nil {
		t.Fatalf("Forecast() error: %v", err)
	}
	if len(points) != 1 || points[0].Predicted != 30.5 {
		t.Errorf("points = %+v", points)
	}
}

func TestRelatedQueriesStampsKinds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"top":[{"query":"meal prep ideas","value":100}],"rising":[{"query":"meal prep 2024","value":2500}]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	rq, err := c.RelatedQueries(context.Background(), "meal prep")
	if err != nil {
		t.Fatalf("RelatedQueries() error: %v", err)
	}
	if rq.Top[0].Kind != domain.QueryTop {
		t.Errorf("Top[0].Kind = %q, want %q", rq.Top[0].Kind, domain.QueryTop)
	}
	if rq.Rising[0].Kind != domain.QueryRising {
		t.Errorf("Rising[0].Kind = %q, want %q", rq.Rising[0].Kind, domain.QueryRising)
	}
}

func TestDashboardKPIs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/trends/dashboard-kpis" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"total_keywords_tracked":3,"highest_interest_keyword":"iphone","highest_interest_value":97,"most_recent_peak_date":"2024-03-04"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	report, err := c.DashboardKPIs(context.Background())
	if err != nil {
		t.Fatalf("DashboardKPIs() error: %v", err)
	}
	if report.TotalKeywords != 3 || report.TopKeyword != "iphone" {
		t.Errorf("report = %+v", report)
	}
	if report.TopValue == nil || *report.TopValue != 97 {
		t.Errorf("TopValue = %v, want 97", report.TopValue)
	}
	if report.LastPeakDate == nil || report.LastPeakDate.Label() != "2024-03-04" {
		t.Errorf("LastPeakDate = %v, want 2024-03-04", report.LastPeakDate)
	}
}

func TestNetworkErrorSurfacesGenerically(t *testing.T) {
	c := New("http://127.0.0.1:1", nil) // nothing listens here
	_, err := c.DashboardKPIs(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if Detail(err) != "" {
		t.Errorf("transport errors must not carry an API detail, got %q", Detail(err))
	}
	if !strings.Contains(err.Error(), "client.DashboardKPIs") {
		t.Errorf("error = %q, want method context", err)
	}
}
