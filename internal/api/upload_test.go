package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/uploads" {
			t.Errorf("path = %q, want /admin/uploads", r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("Content-Type = %q, want multipart/form-data", r.Header.Get("Content-Type"))
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()

		if header.Filename != "contratto.pdf" {
			t.Errorf("filename = %q, want contratto.pdf", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "%PDF-fake" {
			t.Errorf("content = %q", content)
		}

		w.Write([]byte(`{"file_url": "/files/contratto.pdf", "file_size": 9, "file_type": "application/pdf"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "admin", "tok")
	result, err := c.Upload(context.Background(), "/tmp/contratto.pdf", strings.NewReader("%PDF-fake"))
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if result.FileURL != "/files/contratto.pdf" {
		t.Errorf("FileURL = %q", result.FileURL)
	}
	if result.FileSize != 9 {
		t.Errorf("FileSize = %d, want 9", result.FileSize)
	}
}

func TestResolveFileURL(t *testing.T) {
	c := NewClient("https://api.sponsorhub.it", "admin", "tok")

	tests := []struct {
		raw  string
		want string
	}{
		{"/files/logo.png", "https://api.sponsorhub.it/files/logo.png"},
		{"files/logo.png", "https://api.sponsorhub.it/files/logo.png"},
		{"https://cdn.example.com/logo.png", "https://cdn.example.com/logo.png"},
		{"http://cdn.example.com/logo.png", "http://cdn.example.com/logo.png"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := c.ResolveFileURL(tt.raw); got != tt.want {
				t.Errorf("ResolveFileURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
