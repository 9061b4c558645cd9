package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leadscout/leadscout/internal/fetch"
	"github.com/leadscout/leadscout/internal/leads"
)

func testFollower() *Follower {
	client := fetch.New(fetch.Config{
		Timeout:     2 * time.Second,
		MaxAttempts: 2,
		BackoffBase: time.Millisecond,
	})
	return New(client, nil)
}

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFollow_FillsEmailFromText(t *testing.T) {
	srv := serve(t, `<html><body><p>Reach us at leasing@greystar.com for availability.</p></body></html>`)

	rec := leads.Record{Name: "Bay Pointe", MgmtURL: srv.URL}
	got := testFollower().Follow(context.Background(), rec)
	if got.Email != "leasing@greystar.com" {
		t.Errorf("expected email filled, got %q", got.Email)
	}
}

func TestFollow_MailtoFallback(t *testing.T) {
	srv := serve(t, `<html><body><a href="mailto:info@greystar.com?subject=hi">Contact</a></body></html>`)

	rec := leads.Record{Name: "Bay Pointe", MgmtURL: srv.URL}
	got := testFollower().Follow(context.Background(), rec)
	if got.Email != "info@greystar.com" {
		t.Errorf("expected mailto target, got %q", got.Email)
	}
}

func TestFollow_FillsPhoneFromTelLink(t *testing.T) {
	srv := serve(t, `<html><body><a href="tel:+13055550199">(305) 555-0199</a></body></html>`)

	rec := leads.Record{Name: "Bay Pointe", MgmtURL: srv.URL}
	got := testFollower().Follow(context.Background(), rec)
	if got.Phone != "(305) 555-0199" {
		t.Errorf("expected phone filled, got %q", got.Phone)
	}
}

func TestFollow_NeverOverwritesPopulatedFields(t *testing.T) {
	srv := serve(t, `<html><body>
	<p>Call (305) 555-9999 or write other@greystar.com</p>
	</body></html>`)

	rec := leads.Record{
		Name:    "Bay Pointe",
		Phone:   "(305) 555-0100",
		Email:   "leasing@baypointe.com",
		MgmtURL: srv.URL,
	}
	got := testFollower().Follow(context.Background(), rec)
	if got.Phone != "(305) 555-0100" {
		t.Errorf("phone was overwritten: %q", got.Phone)
	}
	if got.Email != "leasing@baypointe.com" {
		t.Errorf("email was overwritten: %q", got.Email)
	}
}

func TestFollow_NoMgmtURLIsNoop(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	rec := leads.Record{Name: "Bay Pointe"}
	got := testFollower().Follow(context.Background(), rec)
	if hits != 0 {
		t.Errorf("expected no fetch without a management URL, got %d", hits)
	}
	if got != rec {
		t.Errorf("record should be unchanged, got %+v", got)
	}
}

func TestFollow_BlockedLeavesRecordUnchanged(t *testing.T) {
	srv := serve(t, `<html><body>Please verify you are human. contact@greystar.com</body></html>`)

	rec := leads.Record{Name: "Bay Pointe", MgmtURL: srv.URL}
	got := testFollower().Follow(context.Background(), rec)
	if got.Email != "" {
		t.Errorf("blocked fetch must not fill fields, got email %q", got.Email)
	}
}

func TestFollow_RunsDelayHookBeforeFetch(t *testing.T) {
	srv := serve(t, `<html><body>ok</body></html>`)

	delays := 0
	client := fetch.New(fetch.Config{Timeout: 2 * time.Second, MaxAttempts: 2, BackoffBase: time.Millisecond})
	f := New(client, func() { delays++ })

	_ = f.Follow(context.Background(), leads.Record{Name: "A", MgmtURL: srv.URL})
	if delays != 1 {
		t.Errorf("expected one delay call, got %d", delays)
	}
}
