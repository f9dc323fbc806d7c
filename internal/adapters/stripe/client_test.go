package stripe_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"casarural/internal/adapters/stripe"
	"casarural/internal/domain"
)

func req() domain.CaptureRequest {
	return domain.CaptureRequest{
		Amount:      30000,
		Currency:    "eur",
		Description: "Booking: Ana",
		SourceToken: "tok_visa",
	}
}

func TestCapture_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/charges" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		user, _, ok := r.BasicAuth()
		if !ok || user != "sk_test_123" {
			t.Errorf("expected secret key as basic auth user, got %q", user)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("amount") != "30000" || r.PostForm.Get("source") != "tok_visa" {
			t.Errorf("unexpected form: %v", r.PostForm)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "ch_123", "status": "succeeded", "amount": 30000, "currency": "eur",
		})
	}))
	defer ts.Close()

	cl, err := stripe.New(ts.URL, "sk_test_123", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ch, err := cl.Capture(ctx, req())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ch.ID != "ch_123" || ch.Status != "succeeded" || ch.Amount != 30000 {
		t.Fatalf("unexpected charge: %+v", ch)
	}
}

func TestCapture_Declined(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "card_error", "code": "card_declined", "message": "Your card was declined."},
		})
	}))
	defer ts.Close()

	cl, _ := stripe.New(ts.URL, "sk_test_123", 100)
	_, err := cl.Capture(context.Background(), req())
	if !errors.Is(err, stripe.ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}

func TestCapture_NoRetries(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	cl, _ := stripe.New(ts.URL, "sk_test_123", 100)
	if _, err := cl.Capture(context.Background(), req()); err == nil {
		t.Fatalf("expected error for 500")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("capture must be single-shot, saw %d attempts", n)
	}
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := stripe.New("https://api.stripe.com", "", 5); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
