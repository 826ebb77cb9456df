package suggest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

func TestHTTPClient_Suggest(t *testing.T) {
	var gotID, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		gotText = gjson.GetBytes(body, "reportText").String()
		gotID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"suggestions":[{"lineNumber":0,"suggestion":"Better line."}]}`)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	items, err := c.Suggest(context.Background(), Request{ID: "req-1", ReportText: "old line"})
	if err != nil {
		t.Fatalf("Suggest() error: %v", err)
	}
	if len(items) != 1 || items[0].Text != "Better line." {
		t.Errorf("items = %+v", items)
	}
	if gotID != "req-1" || gotText != "old line" {
		t.Errorf("server saw id=%q text=%q", gotID, gotText)
	}

	// a request without an ID gets a generated one
	if _, err := c.Suggest(context.Background(), Request{}); err != nil {
		t.Fatal(err)
	}
	if gotID == "" || gotID == "req-1" {
		t.Errorf("generated id = %q", gotID)
	}
}

func TestHTTPClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fail":
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		case "/garbage":
			_, _ = io.WriteString(w, "<html>")
		case "/slow":
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}
	}))
	defer srv.Close()

	c, _ := NewHTTPClient(srv.URL + "/fail")
	_, err := c.Suggest(context.Background(), Request{})
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable || se.Body != "overloaded" {
		t.Errorf("status err = %v", err)
	}

	c, _ = NewHTTPClient(srv.URL + "/garbage")
	if _, err := c.Suggest(context.Background(), Request{}); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("garbage err = %v", err)
	}

	c, _ = NewHTTPClient(srv.URL+"/slow", WithTimeout(50*time.Millisecond))
	if _, err := c.Suggest(context.Background(), Request{}); err == nil {
		t.Error("slow server should time out")
	}

	if _, err := NewHTTPClient(" "); !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("empty endpoint err = %v", err)
	}
}

func TestHTTPClient_RateLimit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = io.WriteString(w, `{"suggestions":[]}`)
	}))
	defer srv.Close()

	c, _ := NewHTTPClient(srv.URL, WithRateLimit(0.001, 1))
	if _, err := c.Suggest(context.Background(), Request{}); err != nil {
		t.Fatalf("first call error: %v", err)
	}
	if _, err := c.Suggest(context.Background(), Request{}); !errors.Is(err, ErrRateLimited) {
		t.Errorf("second call err = %v", err)
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1", calls)
	}
}

func TestHTTPClient_Options(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}
	tests := []struct {
		name string
		opts []HTTPOption
		want time.Duration
	}{
		{"default", nil, DefaultTimeout},
		{"timeout", []HTTPOption{WithTimeout(time.Second)}, time.Second},
		{"nil client then timeout", []HTTPOption{WithHTTPClient(nil), WithTimeout(time.Second)}, time.Second},
		{"timeout then nil client", []HTTPOption{WithTimeout(time.Second), WithHTTPClient(nil)}, time.Second},
		{"own client", []HTTPOption{WithHTTPClient(shared)}, time.Minute},
		{"own client with timeout", []HTTPOption{WithHTTPClient(shared), WithTimeout(time.Second)}, time.Second},
		{"zero timeout ignored", []HTTPOption{WithTimeout(0)}, DefaultTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewHTTPClient("http://127.0.0.1:9/suggest", tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if c.http == nil {
				t.Fatal("no http client")
			}
			if c.http.Timeout != tt.want {
				t.Errorf("timeout = %v, want %v", c.http.Timeout, tt.want)
			}
		})
	}
	if shared.Timeout != time.Minute {
		t.Errorf("caller's client was modified: timeout %v", shared.Timeout)
	}
}
