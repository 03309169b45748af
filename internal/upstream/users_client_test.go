package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type staticTokens string

func (s staticTokens) Token(context.Context) string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, staticTokens("test-token"), zerolog.Nop()), srv
}

func directoryPage(start, count int) []map[string]any {
	page := make([]map[string]any, count)
	for i := 0; i < count; i++ {
		page[i] = map[string]any{
			"userId":    fmt.Sprintf("u%04d", start+i),
			"name":      fmt.Sprintf("User %d", start+i),
			"isActive":  true,
			"createdAt": "2024-05-01T10:00:00",
		}
	}
	return page
}

func TestUsersClient_ListAll_StopsOnShortPage(t *testing.T) {
	const total = 250
	var requests []int

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/User/read" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("missing bearer token, got %q", got)
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("pageNumber"))
		size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if size != listPageSize {
			t.Fatalf("expected pageSize %d, got %d", listPageSize, size)
		}
		requests = append(requests, page)

		start := (page - 1) * size
		count := total - start
		if count > size {
			count = size
		}
		if count < 0 {
			count = 0
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"users": directoryPage(start, count)})
	}))

	users, err := NewUsersClient(client).ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(users) != total {
		t.Fatalf("expected %d users, got %d", total, len(users))
	}
	if len(requests) != 3 {
		t.Fatalf("expected exactly 3 page requests, got %v", requests)
	}
	if users[0].UserID != "u0000" || users[total-1].UserID != "u0249" {
		t.Fatalf("pages out of order: first=%s last=%s", users[0].UserID, users[total-1].UserID)
	}
}

func TestUsersClient_ListAll_PageCap(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Never a short page: a runaway upstream.
		_ = json.NewEncoder(w).Encode(directoryPage(0, listPageSize))
	}))

	_, err := NewUsersClient(client).ListAll(context.Background())
	if !errors.Is(err, ErrTooManyPages) {
		t.Fatalf("expected ErrTooManyPages, got %v", err)
	}
}

func TestUsersClient_List_FaultEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"database offline"}`))
	}))

	_, err := NewUsersClient(client).List(context.Background(), 1, listPageSize)
	var fault *Fault
	if !errors.As(err, &fault) {
		t.Fatalf("expected Fault, got %v", err)
	}
	if fault.Code != "500" || fault.Description != "database offline" {
		t.Fatalf("unexpected fault: %+v", fault)
	}
}

func TestUsersClient_UpdateRole_SendsQueryParams(t *testing.T) {
	var gotMethod, gotUser, gotRole string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotUser = r.URL.Query().Get("userId")
		gotRole = r.URL.Query().Get("roleName")
		_, _ = w.Write([]byte(`{"isSuccess":true}`))
	}))

	if err := NewUsersClient(client).UpdateRole(context.Background(), "u42", "Staff"); err != nil {
		t.Fatalf("UpdateRole returned error: %v", err)
	}
	if gotMethod != http.MethodPut || gotUser != "u42" || gotRole != "Staff" {
		t.Fatalf("unexpected request: %s userId=%s roleName=%s", gotMethod, gotUser, gotRole)
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, time.Second, staticTokens(""), zerolog.Nop())
	_, err := NewUsersClient(client).List(context.Background(), 1, listPageSize)
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}
