package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/carewatch/backend/internal/logger"
	"github.com/carewatch/backend/internal/models"
)

// BroadcastResult aggregates the outcome of a best-effort fan-out.
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Pruned int `json:"pruned"`
}

type sendOutcome int

const (
	sendOK   sendOutcome = iota
	sendGone             // endpoint permanently invalid, prune the subscription
	sendFailed
)

// pushSender abstracts the push transport so delivery can be faked in tests.
type pushSender interface {
	Send(sub models.Subscription, payload []byte) sendOutcome
}

type webpushSender struct {
	options webpush.Options
}

func (w *webpushSender) Send(sub models.Subscription, payload []byte) sendOutcome {
	resp, err := webpush.SendNotification(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &w.options)
	if err != nil {
		logger.WithError(err, "push_service").Warn("Push delivery failed")
		return sendFailed
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return sendGone
	case resp.StatusCode >= 400:
		logger.Warn("Push endpoint rejected notification", map[string]interface{}{
			"status":   resp.StatusCode,
			"endpoint": sub.Endpoint,
		})
		return sendFailed
	default:
		return sendOK
	}
}

// PushService fans notifications out to every registered subscription.
type PushService struct {
	subscriptions *SubscriptionService
	sender        pushSender
}

func NewPushService(subscriptions *SubscriptionService) *PushService {
	return &PushService{
		subscriptions: subscriptions,
		sender: &webpushSender{options: webpush.Options{
			Subscriber:      os.Getenv("VAPID_SUBSCRIBER"),
			VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
			VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
			TTL:             60,
		}},
	}
}

// Broadcast delivers a notification to all subscribers concurrently. One
// subscriber's failure never blocks the others: transient failures are logged
// and the subscription kept, while endpoints the push service reports as gone
// (404/410) are pruned from the registry. It only returns an error when the
// registry itself cannot be read.
func (ps *PushService) Broadcast(title, body string) (BroadcastResult, error) {
	subs, err := ps.subscriptions.All()
	if err != nil {
		return BroadcastResult{}, err
	}

	payload, err := json.Marshal(map[string]string{"title": title, "body": body})
	if err != nil {
		return BroadcastResult{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	var (
		mu     sync.Mutex
		result BroadcastResult
		gone   []string
		wg     sync.WaitGroup
	)
	for _, sub := range subs {
		wg.Add(1)
		go func(sub models.Subscription) {
			defer wg.Done()
			switch ps.sender.Send(sub, payload) {
			case sendOK:
				mu.Lock()
				result.Sent++
				mu.Unlock()
			case sendGone:
				mu.Lock()
				gone = append(gone, sub.Endpoint)
				mu.Unlock()
			}
		}(sub)
	}
	wg.Wait()

	for _, endpoint := range gone {
		if err := ps.subscriptions.Remove(endpoint); err != nil {
			logger.WithError(err, "push_service").Error("Failed to prune dead subscription")
			continue
		}
		result.Pruned++
	}

	logger.Info("Broadcast finished", map[string]interface{}{
		"total":  len(subs),
		"sent":   result.Sent,
		"pruned": result.Pruned,
	})
	return result, nil
}
