package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/thing" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"name":"fan","on":true}`)
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
		On   bool   `json:"on"`
	}
	c := New(srv.URL+"/", nil)
	if err := c.GetJSON(context.Background(), "/api/thing", &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if out.Name != "fan" || !out.On {
		t.Fatalf("unexpected decode: %+v", out)
	}
}

func TestClient_ErrorKinds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/html":
			_, _ = io.WriteString(w, "<html>oops</html>")
		case "/boom":
			http.Error(w, "internal", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()
	c := New(srv.URL, nil)
	var out map[string]any

	err := c.GetJSON(context.Background(), "/html", &out)
	if !IsDecode(err) || IsNetwork(err) {
		t.Fatalf("expected DecodeError, got %T %v", err, err)
	}

	err = c.GetJSON(context.Background(), "/boom", &out)
	var ne *NetworkError
	if !errors.As(err, &ne) || ne.Status != http.StatusInternalServerError {
		t.Fatalf("expected NetworkError with 500, got %T %v", err, err)
	}

	dead := New("http://127.0.0.1:1", nil)
	if err := dead.GetJSON(context.Background(), "/x", &out); !IsNetwork(err) {
		t.Fatalf("expected NetworkError for refused connection, got %T %v", err, err)
	}
}

func TestStatusText_SameForBothKinds(t *testing.T) {
	n := StatusText(&NetworkError{Op: "GET /", Err: errors.New("refused")})
	d := StatusText(&DecodeError{Op: "GET /", Err: errors.New("bad json")})
	if n != StatusFailed || d != StatusFailed {
		t.Fatalf("expected %q for both, got %q and %q", StatusFailed, n, d)
	}
	if StatusText(nil) != "ok" {
		t.Fatalf("nil error should read ok")
	}
}
