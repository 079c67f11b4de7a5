package events

import (
	"testing"
	"time"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := "accrual-123"
	tenantID := "Crest Bank"

	before := time.Now().UTC()
	event := NewBaseEvent("InterestAccrued", aggregateID, "LoanInterestAccrual", tenantID)
	after := time.Now().UTC()

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}

	if event.EventType() != "InterestAccrued" {
		t.Errorf("expected event type %q, got %q", "InterestAccrued", event.EventType())
	}

	if event.AggregateID() != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, event.AggregateID())
	}

	if event.AggregateType() != "LoanInterestAccrual" {
		t.Errorf("expected aggregate type %q, got %q", "LoanInterestAccrual", event.AggregateType())
	}

	if event.TenantID() != tenantID {
		t.Errorf("expected tenant ID %q, got %q", tenantID, event.TenantID())
	}

	if event.OccurredAt().Before(before) || event.OccurredAt().After(after) {
		t.Errorf("expected occurredAt between %v and %v, got %v", before, after, event.OccurredAt())
	}
}

func TestEventIDsAreUnique(t *testing.T) {
	a := NewBaseEvent("InterestAccrued", "accrual-1", "LoanInterestAccrual", "")
	b := NewBaseEvent("InterestAccrued", "accrual-1", "LoanInterestAccrual", "")

	if a.EventID() == b.EventID() {
		t.Error("expected distinct event IDs for distinct events")
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}
