package embedding

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientEmbed(t *testing.T) {
	t.Run("single input yields single vector", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/embed" {
				t.Errorf("path = %q", r.URL.Path)
			}
			var req map[string]string
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &req)
			if req["inputs"] != "hello world" {
				t.Errorf("inputs = %q", req["inputs"])
			}
			w.Write([]byte(`[[0.1, 0.2, 0.3]]`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		vec, err := c.Embed("hello world")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vec) != 3 || vec[0] != 0.1 {
			t.Fatalf("vec = %v", vec)
		}
	})

	t.Run("gateway error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("model not loaded"))
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		if _, err := c.Embed("text"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		if _, err := c.Embed("text"); err == nil {
			t.Fatal("expected error for empty batch")
		}
	})
}

func TestClientHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.HealthCheck(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		vec  []float32
	}{
		{"typical vector", []float32{0.1, -0.5, 3.14, 0}},
		{"empty vector", []float32{}},
		{"single element", []float32{1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BytesToFloat32(Float32ToBytes(tt.vec))
			if len(got) != len(tt.vec) {
				t.Fatalf("length %d, want %d", len(got), len(tt.vec))
			}
			for i := range tt.vec {
				if got[i] != tt.vec[i] {
					t.Errorf("element %d = %v, want %v", i, got[i], tt.vec[i])
				}
			}
		})
	}

	t.Run("misaligned bytes rejected", func(t *testing.T) {
		if got := BytesToFloat32([]byte{1, 2, 3}); got != nil {
			t.Fatalf("got %v, want nil for misaligned input", got)
		}
	})
}
