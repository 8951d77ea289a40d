package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"coursegate/internal/shared/logger"
)

const (
	dedupeKeyPrefix = "webhook:event:"
	dedupeTTL       = 24 * time.Hour
)

// WebhookDeduper remembers successfully processed webhook event ids so
// provider redeliveries can be acknowledged without reprocessing. An event id
// is only marked after processing succeeds; a delivery that fails keeps its id
// unmarked so the provider's retry is processed again. It is an optimization
// only: grant processing is idempotent, so a cache miss or an unavailable
// backend never blocks delivery.
type WebhookDeduper struct {
	client *redis.Client
	logger logger.Interface
}

// NewWebhookDeduper accepts a nil client, in which case every delivery is
// treated as the first one.
func NewWebhookDeduper(client *redis.Client, log logger.Interface) *WebhookDeduper {
	return &WebhookDeduper{client: client, logger: log}
}

// Seen reports whether the event id has already been processed successfully.
// Backend failures fail open so a degraded cache cannot reject webhooks.
func (d *WebhookDeduper) Seen(ctx context.Context, eventID string) bool {
	if d.client == nil || eventID == "" {
		return false
	}

	n, err := d.client.Exists(ctx, dedupeKeyPrefix+eventID).Result()
	if err != nil {
		d.logger.Warnw("webhook dedupe cache unavailable, processing anyway", "error", err)
		return false
	}
	return n > 0
}

// MarkDelivered records the event id after successful processing. Best
// effort: a failed write only means a redelivery gets reprocessed, which the
// idempotent grant path absorbs.
func (d *WebhookDeduper) MarkDelivered(ctx context.Context, eventID string) {
	if d.client == nil || eventID == "" {
		return
	}

	if err := d.client.Set(ctx, dedupeKeyPrefix+eventID, 1, dedupeTTL).Err(); err != nil {
		d.logger.Warnw("failed to record webhook delivery", "event_id", eventID, "error", err)
	}
}
