package core

import "testing"

func TestProjectInterestCompoundsMonthly(t *testing.T) {
	rate := MustMoney("12") // 1% per month
	entries := ProjectInterest(MustMoney("1000"), &rate, 12, NewDate(2025, 1, 1))

	if len(entries) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(entries))
	}
	if entries[0].Interest.Cmp(MustMoney("10.00")) != 0 {
		t.Fatalf("month 1 interest = %s, want 10.00", entries[0].Interest)
	}
	if entries[0].Balance.Cmp(MustMoney("1010.00")) != 0 {
		t.Fatalf("month 1 balance = %s, want 1010.00", entries[0].Balance)
	}
	// Compounding, not simple interest on the original principal.
	if entries[1].Interest.Cmp(MustMoney("10.10")) != 0 {
		t.Fatalf("month 2 interest = %s, want 10.10", entries[1].Interest)
	}
	if entries[1].Balance.Cmp(MustMoney("1020.10")) != 0 {
		t.Fatalf("month 2 balance = %s, want 1020.10", entries[1].Balance)
	}
}

func TestProjectInterestMonthLabels(t *testing.T) {
	rate := MustMoney("12")
	entries := ProjectInterest(MustMoney("1000"), &rate, 2, NewDate(2025, 11, 15))
	if entries[0].Month != "DECEMBER 2025" {
		t.Fatalf("month 1 label = %q, want DECEMBER 2025", entries[0].Month)
	}
	if entries[1].Month != "JANUARY 2026" {
		t.Fatalf("month 2 label = %q, want JANUARY 2026", entries[1].Month)
	}
}

func TestProjectInterestZeroRateIsFlat(t *testing.T) {
	balance := MustMoney("5432.10")
	zero := MustMoney("0")
	for _, rate := range []*Money{nil, &zero} {
		entries := ProjectInterest(balance, rate, 6, NewDate(2025, 1, 1))
		if len(entries) != 6 {
			t.Fatalf("expected 6 entries, got %d", len(entries))
		}
		for i, e := range entries {
			if !e.Interest.IsZero() {
				t.Fatalf("month %d interest = %s, want 0", i+1, e.Interest)
			}
			if e.Balance.Cmp(balance) != 0 {
				t.Fatalf("month %d balance = %s, want %s", i+1, e.Balance, balance)
			}
		}
	}
}

func TestProjectInterestZeroHorizon(t *testing.T) {
	rate := MustMoney("4.5")
	if entries := ProjectInterest(MustMoney("1000"), &rate, 0, NewDate(2025, 1, 1)); len(entries) != 0 {
		t.Fatalf("expected empty projection, got %d entries", len(entries))
	}
}

func TestProjectInterestIsPure(t *testing.T) {
	rate := MustMoney("4.5")
	first := ProjectInterest(MustMoney("2500"), &rate, 24, NewDate(2025, 6, 1))
	second := ProjectInterest(MustMoney("2500"), &rate, 24, NewDate(2025, 6, 1))
	for i := range first {
		if first[i] != second[i] {
			// decimal.Decimal is comparable only via Cmp; fall back to fields.
			if first[i].Month != second[i].Month ||
				first[i].Interest.Cmp(second[i].Interest) != 0 ||
				first[i].Balance.Cmp(second[i].Balance) != 0 {
				t.Fatalf("projection differs at month %d", i+1)
			}
		}
	}
}

func TestMonthlyRateScale(t *testing.T) {
	// 4.5%/yr -> 0.00375/month, held at 8 decimal places.
	rate := MonthlyRate(MustMoney("4.5"))
	if rate.String() != "0.00375" {
		t.Fatalf("monthly rate = %s, want 0.00375", rate)
	}
}
