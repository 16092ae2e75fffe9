package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettle(t *testing.T) {
	t.Run("pending settles once", func(t *testing.T) {
		rec := NewTransaction("TXN-1", "A", "B", TypeTransfer, decimal.NewFromInt(10), "test")
		if rec.Status != StatusPending {
			t.Fatalf("new record status = %s, want %s", rec.Status, StatusPending)
		}
		if err := rec.Settle(StatusSuccess); err != nil {
			t.Fatalf("Settle returned error: %v", err)
		}
		if rec.Status != StatusSuccess {
			t.Errorf("status = %s, want %s", rec.Status, StatusSuccess)
		}
	})

	t.Run("settling twice fails", func(t *testing.T) {
		rec := NewTransaction("TXN-2", "A", "", TypeWithdraw, decimal.NewFromInt(10), "test")
		if err := rec.Settle(StatusFailed); err != nil {
			t.Fatalf("first Settle returned error: %v", err)
		}
		if err := rec.Settle(StatusSuccess); err == nil {
			t.Error("second Settle succeeded, want error")
		}
		if rec.Status != StatusFailed {
			t.Errorf("status after double settle = %s, want %s", rec.Status, StatusFailed)
		}
	})

	t.Run("settling to pending fails", func(t *testing.T) {
		rec := NewTransaction("TXN-3", "", "B", TypeDeposit, decimal.NewFromInt(10), "test")
		if err := rec.Settle(StatusPending); err == nil {
			t.Error("Settle(PENDING) succeeded, want error")
		}
	})

	t.Run("every terminal status is reachable", func(t *testing.T) {
		for _, s := range []Status{StatusSuccess, StatusFailed, StatusInsufficientFunds, StatusInvalidAccount} {
			rec := NewTransaction("TXN-4", "A", "B", TypeTransfer, decimal.NewFromInt(1), "test")
			if err := rec.Settle(s); err != nil {
				t.Errorf("Settle(%s) returned error: %v", s, err)
			}
		}
	})
}

func TestSuccessful(t *testing.T) {
	rec := NewTransaction("TXN-5", "", "B", TypeDeposit, decimal.NewFromInt(10), "test")
	if rec.Successful() {
		t.Error("pending record reports successful")
	}
	if err := rec.Settle(StatusSuccess); err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}
	if !rec.Successful() {
		t.Error("settled SUCCESS record reports not successful")
	}
}

func TestTransactionString(t *testing.T) {
	t.Run("deposit renders N/A source", func(t *testing.T) {
		rec := NewTransaction("TXN-6", "", "ACC-00000001", TypeDeposit, decimal.NewFromFloat(12.5), "salary")
		got := rec.String()
		for _, want := range []string{"TXN-6", "DEPOSIT", "$12.50", "from=N/A", "to=ACC-00000001"} {
			if !strings.Contains(got, want) {
				t.Errorf("String() = %q, missing %q", got, want)
			}
		}
	})

	t.Run("withdrawal renders N/A target", func(t *testing.T) {
		rec := NewTransaction("TXN-7", "ACC-00000001", "", TypeWithdraw, decimal.NewFromInt(30), "atm")
		got := rec.String()
		if !strings.Contains(got, "to=N/A") {
			t.Errorf("String() = %q, missing to=N/A", got)
		}
	})
}

func TestResultConstructors(t *testing.T) {
	rec := NewTransaction("TXN-8", "A", "B", TypeTransfer, decimal.NewFromInt(10), "test")

	ok := Success(rec)
	if !ok.OK || ok.Status != StatusSuccess || ok.Reason != "" {
		t.Errorf("Success() = %+v, want OK SUCCESS with empty reason", ok)
	}
	if ok.Record.ID != "TXN-8" {
		t.Errorf("Success record id = %q, want TXN-8", ok.Record.ID)
	}

	bad := Failure(StatusInsufficientFunds, "insufficient funds", rec)
	if bad.OK || bad.Status != StatusInsufficientFunds || bad.Reason == "" {
		t.Errorf("Failure() = %+v, want not-OK INSUFFICIENT_FUNDS with reason", bad)
	}
}
