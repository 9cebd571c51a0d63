package services

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/carewatch/backend/internal/models"
)

// fakeSender scripts per-endpoint delivery outcomes.
type fakeSender struct {
	mu       sync.Mutex
	outcomes map[string]sendOutcome
	payloads [][]byte
}

func (f *fakeSender) Send(sub models.Subscription, payload []byte) sendOutcome {
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()
	return f.outcomes[sub.Endpoint]
}

func newTestPushService(t *testing.T, outcomes map[string]sendOutcome) (*PushService, *SubscriptionService, *fakeSender) {
	t.Helper()
	subs := NewSubscriptionService(newTestDB(t))
	sender := &fakeSender{outcomes: outcomes}
	return &PushService{subscriptions: subs, sender: sender}, subs, sender
}

func TestBroadcastCountsAndPrunes(t *testing.T) {
	svc, subs, _ := newTestPushService(t, map[string]sendOutcome{
		"https://push.example.com/alive": sendOK,
		"https://push.example.com/dead":  sendGone,
	})

	if err := subs.Upsert("https://push.example.com/alive", "k1", "a1", nil); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := subs.Upsert("https://push.example.com/dead", "k2", "a2", nil); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	result, err := svc.Broadcast("Fall detected", "Room 12")
	if err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	if result.Sent != 1 || result.Pruned != 1 {
		t.Errorf("Expected {sent: 1, pruned: 1}, got %+v", result)
	}

	// The dead endpoint must be gone from the registry.
	remaining, err := subs.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Endpoint != "https://push.example.com/alive" {
		t.Errorf("Expected only the live subscription to remain, got %+v", remaining)
	}
}

func TestBroadcastKeepsTransientFailures(t *testing.T) {
	svc, subs, _ := newTestPushService(t, map[string]sendOutcome{
		"https://push.example.com/alive": sendOK,
		"https://push.example.com/flaky": sendFailed,
	})

	if err := subs.Upsert("https://push.example.com/alive", "k1", "a1", nil); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := subs.Upsert("https://push.example.com/flaky", "k2", "a2", nil); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	result, err := svc.Broadcast("Reminder", "Evening rounds")
	if err != nil {
		t.Fatalf("Broadcast must not fail on individual delivery errors, got %v", err)
	}

	if result.Sent != 1 || result.Pruned != 0 {
		t.Errorf("Expected {sent: 1, pruned: 0}, got %+v", result)
	}

	remaining, err := subs.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(remaining) != 2 {
		t.Errorf("Transient failures must keep the subscription, got %d remaining", len(remaining))
	}
}

func TestBroadcastEmptyRegistry(t *testing.T) {
	svc, _, sender := newTestPushService(t, nil)

	result, err := svc.Broadcast("Anything", "Nobody listens")
	if err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}
	if result.Sent != 0 || result.Pruned != 0 {
		t.Errorf("Expected {sent: 0, pruned: 0}, got %+v", result)
	}
	if len(sender.payloads) != 0 {
		t.Errorf("No deliveries should have been attempted, got %d", len(sender.payloads))
	}
}

func TestBroadcastPayloadShape(t *testing.T) {
	svc, subs, sender := newTestPushService(t, map[string]sendOutcome{
		"https://push.example.com/alive": sendOK,
	})

	if err := subs.Upsert("https://push.example.com/alive", "k1", "a1", nil); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if _, err := svc.Broadcast("Fall detected", "Room 12 - Margaret Olsen"); err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	if len(sender.payloads) != 1 {
		t.Fatalf("Expected 1 delivery attempt, got %d", len(sender.payloads))
	}
	var payload map[string]string
	if err := json.Unmarshal(sender.payloads[0], &payload); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	if payload["title"] != "Fall detected" || payload["body"] != "Room 12 - Margaret Olsen" {
		t.Errorf("Unexpected payload: %v", payload)
	}
}
