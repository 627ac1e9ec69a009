package speech

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSynthesizeRequestShape(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody synthesizeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Write([]byte("RIFFfake"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sage")
	audio, err := c.Synthesize("Time for your medication")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("unexpected content type %q", gotContentType)
	}
	if gotBody.Text != "Time for your medication" {
		t.Errorf("unexpected text %q", gotBody.Text)
	}
	if gotBody.Voice != "sage" {
		t.Errorf("unexpected voice %q", gotBody.Voice)
	}
	if gotBody.Format != "wav" {
		t.Errorf("unexpected format %q", gotBody.Format)
	}
	if !bytes.Equal(audio, []byte("RIFFfake")) {
		t.Errorf("audio bytes do not match response")
	}
}

func TestSynthesizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Synthesize("hello"); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	c := NewClient("http://localhost:1", "sage")
	if _, err := c.Synthesize(""); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestNewClientEmptyEndpoint(t *testing.T) {
	if c := NewClient("", "sage"); c != nil {
		t.Fatal("expected nil client for empty endpoint")
	}
}

func TestNewClientDefaultVoice(t *testing.T) {
	c := NewClient("http://localhost:1", "")
	if c.voice != "sage" {
		t.Errorf("expected default voice sage, got %q", c.voice)
	}
}
