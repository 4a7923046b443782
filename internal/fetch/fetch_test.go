package fetch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDownload(t *testing.T) {
	body := strings.Repeat("release-bytes ", 1024)
	var gotAuth, gotAccept string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "artifact.zip")
	fetcher := NewFetcher(5 * time.Second).WithToken("ghp_test123")

	if err := fetcher.Download(srv.URL+"/asset", dest); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read downloaded file: %v", err)
	}
	if string(got) != body {
		t.Error("downloaded content does not match served body")
	}
	if gotAuth != "Bearer ghp_test123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotAccept != "application/octet-stream" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestDownloadNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "artifact.zip")
	err := NewFetcher(5 * time.Second).Download(srv.URL+"/missing", dest)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %T", err)
	}
	if !strings.Contains(ne.URL, srv.URL) {
		t.Errorf("NetworkError.URL = %q, want the request URL", ne.URL)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should mention the status: %v", err)
	}
}

func TestDownloadConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	dest := filepath.Join(t.TempDir(), "artifact.zip")
	err := NewFetcher(2 * time.Second).Download(srv.URL+"/asset", dest)

	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestDownloadNoTokenMeansNoAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "artifact.zip")
	if err := NewFetcher(5 * time.Second).Download(srv.URL, dest); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}
