package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGatewayClientSessionHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payment/hash" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		for _, field := range []string{"txnid", "amount", "productinfo", "firstname", "email"} {
			if r.PostForm.Get(field) == "" {
				t.Errorf("missing form field %s", field)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","key":"mk","hash":"hh"}`))
	}))
	defer srv.Close()

	c, err := NewGatewayClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	resp, err := c.SessionHash(context.Background(), HashRequest{
		TxnID: "txn1", Amount: "10.00", ProductInfo: "recharge", FirstName: "Asha", Email: "a@example.com",
	})
	if err != nil {
		t.Fatalf("session hash: %v", err)
	}
	if resp.Key != "mk" || resp.Hash != "hh" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGatewayClientRejectsNonSuccess(t *testing.T) {
	for name, body := range map[string]string{
		"error status": `{"status":"error","message":"nope"}`,
		"missing hash": `{"status":"success","key":"mk"}`,
		"missing key":  `{"status":"success","hash":"hh"}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			}))
			defer srv.Close()

			c, err := NewGatewayClient(srv.URL)
			if err != nil {
				t.Fatalf("new client: %v", err)
			}
			if _, err := c.SessionHash(context.Background(), HashRequest{TxnID: "t"}); !errors.Is(err, ErrGatewayRejected) {
				t.Fatalf("expected ErrGatewayRejected, got %v", err)
			}
		})
	}
}

func TestGatewayClientRequiresURL(t *testing.T) {
	if _, err := NewGatewayClient(""); err == nil {
		t.Fatal("expected error for empty gateway url")
	}
}
