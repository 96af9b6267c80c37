package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRequestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.RequestStatus
		to   domain.RequestStatus
		want bool
	}{
		{"submit draft", domain.StatusDraft, domain.StatusSubmitted, true},
		{"approve submitted", domain.StatusSubmitted, domain.StatusApproved, true},
		{"reject submitted", domain.StatusSubmitted, domain.StatusRejected, true},
		{"resubmit rejected", domain.StatusRejected, domain.StatusSubmitted, true},
		{"pay approved", domain.StatusApproved, domain.StatusPaid, true},
		{"pay submitted", domain.StatusSubmitted, domain.StatusPaid, false},
		{"approve rejected", domain.StatusRejected, domain.StatusApproved, false},
		{"reject approved", domain.StatusApproved, domain.StatusRejected, false},
		{"anything from paid", domain.StatusPaid, domain.StatusSubmitted, false},
		{"draft straight to approved", domain.StatusDraft, domain.StatusApproved, false},
		{"self loop", domain.StatusSubmitted, domain.StatusSubmitted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRequestStatus_IsValid(t *testing.T) {
	assert.True(t, domain.StatusPaid.IsValid())
	assert.False(t, domain.RequestStatus("ARCHIVED").IsValid())
}

func TestComputeFingerprint(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	base := domain.ComputeFingerprint("emp-7", "Taxi", "Airport", decimal.RequireFromString("150"), "cat-1", date)

	t.Run("amount compares numerically", func(t *testing.T) {
		fp := domain.ComputeFingerprint("emp-7", "Taxi", "Airport", decimal.RequireFromString("150.00"), "cat-1", date)
		assert.Equal(t, base, fp)
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		fp := domain.ComputeFingerprint("emp-7", "Taxi", "Airport", decimal.RequireFromString("150"), "cat-1", date.Add(15*time.Hour))
		assert.Equal(t, base, fp)
	})

	t.Run("every field participates", func(t *testing.T) {
		variants := []string{
			domain.ComputeFingerprint("emp-8", "Taxi", "Airport", decimal.RequireFromString("150"), "cat-1", date),
			domain.ComputeFingerprint("emp-7", "taxi", "Airport", decimal.RequireFromString("150"), "cat-1", date),
			domain.ComputeFingerprint("emp-7", "Taxi", "Airport ", decimal.RequireFromString("150"), "cat-1", date),
			domain.ComputeFingerprint("emp-7", "Taxi", "Airport", decimal.RequireFromString("150.01"), "cat-1", date),
			domain.ComputeFingerprint("emp-7", "Taxi", "Airport", decimal.RequireFromString("150"), "cat-2", date),
			domain.ComputeFingerprint("emp-7", "Taxi", "Airport", decimal.RequireFromString("150"), "cat-1", date.AddDate(0, 0, 1)),
		}
		for _, v := range variants {
			assert.NotEqual(t, base, v)
		}
	})

	t.Run("separator bytes cannot shift a field boundary", func(t *testing.T) {
		a := domain.ComputeFingerprint("emp-7", "Taxi\x1fAirport", "", decimal.RequireFromString("150"), "cat-1", date)
		b := domain.ComputeFingerprint("emp-7", "Taxi", "Airport", decimal.RequireFromString("150"), "cat-1", date)
		c := domain.ComputeFingerprint("emp-7", "Taxi\x1f", "Airport", decimal.RequireFromString("150"), "cat-1", date)
		d := domain.ComputeFingerprint("emp-7", "Taxi", "\x1fAirport", decimal.RequireFromString("150"), "cat-1", date)
		assert.NotEqual(t, a, b)
		assert.NotEqual(t, c, d)
		assert.Equal(t, base, b)
	})

	t.Run("draft helper matches", func(t *testing.T) {
		d := domain.Draft{EmployeeID: "emp-7", Subject: "Taxi", Description: "Airport", Amount: decimal.NewFromInt(150), CategoryID: "cat-1", DateOfExpense: date}
		assert.Equal(t, base, domain.FingerprintOf(d))
	})
}

func TestIsValidWalk(t *testing.T) {
	now := time.Now()
	entry := func(from, to domain.RequestStatus, offset time.Duration) domain.StatusHistoryEntry {
		return domain.StatusHistoryEntry{FromStatus: from, ToStatus: to, ChangedAt: now.Add(offset)}
	}

	valid := []domain.StatusHistoryEntry{
		entry(domain.StatusDraft, domain.StatusSubmitted, 0),
		entry(domain.StatusSubmitted, domain.StatusRejected, time.Second),
		entry(domain.StatusRejected, domain.StatusSubmitted, 2*time.Second),
		entry(domain.StatusSubmitted, domain.StatusApproved, 3*time.Second),
		entry(domain.StatusApproved, domain.StatusPaid, 4*time.Second),
	}
	assert.True(t, domain.IsValidWalk(valid))
	assert.True(t, domain.IsValidWalk(nil))

	gap := []domain.StatusHistoryEntry{
		entry(domain.StatusDraft, domain.StatusSubmitted, 0),
		entry(domain.StatusApproved, domain.StatusPaid, time.Second),
	}
	assert.False(t, domain.IsValidWalk(gap))

	backwards := []domain.StatusHistoryEntry{
		entry(domain.StatusDraft, domain.StatusSubmitted, time.Second),
		entry(domain.StatusSubmitted, domain.StatusApproved, 0),
	}
	assert.False(t, domain.IsValidWalk(backwards))
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()
	s := domain.Session{EmployeeID: "e", SessionID: "j", ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.IsExpired(now))
	assert.True(t, s.IsExpired(now.Add(time.Minute)))
}

func TestRole_IsAdminManageable(t *testing.T) {
	assert.True(t, domain.RoleEmployee.IsAdminManageable())
	assert.True(t, domain.RoleManager.IsAdminManageable())
	assert.False(t, domain.RoleFinance.IsAdminManageable())
	assert.False(t, domain.RoleAdmin.IsAdminManageable())
}
