// internal/device/client_test.go
package device

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

// testClient points a Client at an httptest server instead of the
// fixed channel port table.
func testClient(srv *httptest.Server, creds *Credentials) *Client {
	c := NewClient("ignored", time.Second, creds)
	c.endpoint = func(_, _ string) (string, error) {
		return srv.URL + "/", nil
	}
	return c
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		_, _ = w.Write([]byte(MarkerSubmitButton))
	}))
	defer srv.Close()

	page, err := testClient(srv, nil).Fetch(context.Background(), "1")
	if err != nil {
		t.Fatalf("Fetch err=%v", err)
	}
	if page.StatusCode != 200 {
		t.Fatalf("status=%d", page.StatusCode)
	}
	if page.Body != MarkerSubmitButton {
		t.Fatalf("body=%q", page.Body)
	}
}

func TestClientSubmitFormEncoded(t *testing.T) {
	var gotContentType, gotField string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotField = r.PostFormValue("resp_chan_list")
		_, _ = w.Write([]byte(MarkerCancelButton))
	}))
	defer srv.Close()

	form := url.Values{}
	form.Set("resp_chan_list", "2,3")

	page, err := testClient(srv, nil).Submit(context.Background(), "1", form)
	if err != nil {
		t.Fatalf("Submit err=%v", err)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("content type=%q", gotContentType)
	}
	if gotField != "2,3" {
		t.Fatalf("resp_chan_list=%q, want \"2,3\"", gotField)
	}
	if page.StatusCode != 200 {
		t.Fatalf("status=%d", page.StatusCode)
	}
}

func TestClientBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "operator" || pass != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(MarkerSubmitButton))
	}))
	defer srv.Close()

	creds := &Credentials{Username: "operator", Password: "hunter2"}
	page, err := testClient(srv, creds).Fetch(context.Background(), "1")
	if err != nil {
		t.Fatalf("Fetch err=%v", err)
	}
	if page.StatusCode != 200 {
		t.Fatalf("status=%d, credentials not attached", page.StatusCode)
	}
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	if _, err := testClient(srv, nil).Fetch(context.Background(), "1"); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestEndpointURL(t *testing.T) {
	u, err := EndpointURL("192.168.1.20", "3")
	if err != nil {
		t.Fatalf("EndpointURL err=%v", err)
	}
	if u != "http://192.168.1.20:9346/" {
		t.Fatalf("url=%q", u)
	}

	if _, err := EndpointURL("192.168.1.20", "5"); err == nil {
		t.Fatalf("expected error for unknown channel")
	}
}
