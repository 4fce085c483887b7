package astropredict

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"horoscopefetcher/internal/fetcher"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		category fetcher.Category
		want     string
	}{
		{fetcher.CategoryHoroscope, "https://example.test/horoscope?lang=en&zodiac=aries&type=daily"},
		{fetcher.CategoryNumber, "https://example.test/horoscope?zodiac=aries&dailylucky=number"},
		{fetcher.CategoryColor, "https://example.test/horoscope?zodiac=aries&dailylucky=color"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got, err := BuildURL("https://example.test/", "aries", tt.category)
			if err != nil {
				t.Fatalf("BuildURL() returned unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildURL_UnknownCategory(t *testing.T) {
	if _, err := BuildURL(DefaultBaseURL, "leo", fetcher.Category("weather")); err == nil {
		t.Error("BuildURL() expected error for unknown category, got nil")
	}
}

func TestBuildURL_DefaultHost(t *testing.T) {
	got, err := BuildURL(DefaultBaseURL, "pisces", fetcher.CategoryColor)
	if err != nil {
		t.Fatalf("BuildURL() returned unexpected error: %v", err)
	}

	want := "https://astropredict-daily-horoscopes-lucky-insights.p.rapidapi.com/horoscope?zodiac=pisces&dailylucky=color"
	if got != want {
		t.Errorf("BuildURL() = %q, want %q", got, want)
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient(fetcher.NewHTTPClient(time.Second), "")
	if c == nil {
		t.Fatal("NewClient() returned nil")
	}
	if c.host != DefaultHost {
		t.Errorf("host = %q, want %q", c.host, DefaultHost)
	}
	if c.client == nil {
		t.Error("client is nil")
	}
}

func TestClient_Get_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if got := r.Header.Get("x-rapidapi-host"); got != "test.host" {
			t.Errorf("x-rapidapi-host = %q, want %q", got, "test.host")
		}
		if got := r.Header.Get("x-rapidapi-key"); got != "secret" {
			t.Errorf("x-rapidapi-key = %q, want %q", got, "secret")
		}
		if got := r.URL.Query().Get("zodiac"); got != "virgo" {
			t.Errorf("zodiac = %q, want virgo", got)
		}
		if got := r.URL.Query().Get("type"); got != "daily" {
			t.Errorf("type = %q, want daily", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"horoscope": "Plan ahead."}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	c := NewClient(fetcher.NewHTTPClient(time.Second), "test.host")
	rawURL, _ := BuildURL(server.URL, "virgo", fetcher.CategoryHoroscope)

	body, err := c.Get(context.Background(), rawURL, "secret")
	if err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}

	want := `{"horoscope": "Plan ahead."}`
	if body != want {
		t.Errorf("Get() = %q, want %q", body, want)
	}
}

func TestClient_Get_HTTPErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType fetcher.ErrorType
	}{
		{"quota", http.StatusTooManyRequests, `{"message":"You have exceeded the DAILY quota"}`, fetcher.ErrorTypeQuota},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Invalid API key"}`, fetcher.ErrorTypeAuth},
		{"forbidden", http.StatusForbidden, `{"message":"You are not subscribed to this API."}`, fetcher.ErrorTypeAuth},
		{"server", http.StatusInternalServerError, "", fetcher.ErrorTypeServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			server := httptest.NewServer(handler)
			defer server.Close()

			c := NewClient(fetcher.NewHTTPClient(time.Second), "")
			_, err := c.Get(context.Background(), server.URL+"/horoscope", "key")
			if err == nil {
				t.Fatal("Get() expected error, got nil")
			}

			var fe *fetcher.FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("Get() error = %T, want *fetcher.FetchError", err)
			}
			if fe.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", fe.Type, tt.wantType)
			}
			if fe.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", fe.StatusCode, tt.status)
			}
			if fe.Body != tt.body {
				t.Errorf("Body = %q, want %q", fe.Body, tt.body)
			}
		})
	}
}

func TestClient_Get_NoRetry(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	c := NewClient(fetcher.NewHTTPClient(time.Second), "")
	if _, err := c.Get(context.Background(), server.URL, "key"); err == nil {
		t.Fatal("Get() expected error, got nil")
	}

	if calls != 1 {
		t.Errorf("server received %d requests, want 1", calls)
	}
}

func TestClient_Get_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	rawURL := server.URL
	server.Close()

	c := NewClient(fetcher.NewHTTPClient(time.Second), "")
	_, err := c.Get(context.Background(), rawURL, "key")
	if err == nil {
		t.Fatal("Get() expected error, got nil")
	}

	var fe *fetcher.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Get() error = %T, want *fetcher.FetchError", err)
	}
	if fe.Type != fetcher.ErrorTypeNetwork {
		t.Errorf("Type = %q, want %q", fe.Type, fetcher.ErrorTypeNetwork)
	}
}

func TestClient_Get_Timeout(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	c := NewClient(fetcher.NewHTTPClient(50*time.Millisecond), "")
	_, err := c.Get(context.Background(), server.URL, "key")
	if err == nil {
		t.Fatal("Get() expected error, got nil")
	}

	var fe *fetcher.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Get() error = %T, want *fetcher.FetchError", err)
	}
	if fe.Type != fetcher.ErrorTypeTimeout {
		t.Errorf("Type = %q, want %q", fe.Type, fetcher.ErrorTypeTimeout)
	}
}

func TestClient_Get_TruncatedBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", "100")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"horoscope": "cut sh`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	c := NewClient(fetcher.NewHTTPClient(time.Second), "")
	body, err := c.Get(context.Background(), server.URL, "key")
	if err == nil {
		t.Fatalf("Get() = %q, want error for a body shorter than its Content-Length", body)
	}

	var fe *fetcher.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Get() error = %T, want *fetcher.FetchError", err)
	}
	if fe.Type != fetcher.ErrorTypeNetwork {
		t.Errorf("Type = %q, want %q", fe.Type, fetcher.ErrorTypeNetwork)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("error = %v, want it to wrap io.ErrUnexpectedEOF", err)
	}
}

func TestClient_Get_StalledBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"horoscope": `))
		w.(http.Flusher).Flush()

		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	c := NewClient(fetcher.NewHTTPClient(100*time.Millisecond), "")

	start := time.Now()
	body, err := c.Get(context.Background(), server.URL, "key")
	if err == nil {
		t.Fatalf("Get() = %q, want error for a stalled body", body)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Get() took %v, want the request timeout to cover the body read", elapsed)
	}

	var fe *fetcher.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Get() error = %T, want *fetcher.FetchError", err)
	}
	if fe.Type != fetcher.ErrorTypeTimeout && fe.Type != fetcher.ErrorTypeNetwork {
		t.Errorf("Type = %q, want timeout or network", fe.Type)
	}
}

func TestClient_Get_TruncatedErrorBodyKeepsStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message": "quota`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	c := NewClient(fetcher.NewHTTPClient(time.Second), "")
	_, err := c.Get(context.Background(), server.URL, "key")

	var fe *fetcher.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Get() error = %T, want *fetcher.FetchError", err)
	}
	if fe.Type != fetcher.ErrorTypeQuota || fe.StatusCode != http.StatusTooManyRequests {
		t.Errorf("error = %v, want quota error with status 429", err)
	}
}
