package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/otherjamesbrown/chatlens/pkg/logging"
)

// ChannelReportExported is the default Redis channel for exported reports.
const ChannelReportExported = "events.chat_report.exported"

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// NewBaseEvent creates a BaseEvent with sensible defaults.
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Source:    "chatlens",
		Version:   "1.0",
	}
}

// ReportExportedEvent carries a finished report to downstream renderers.
type ReportExportedEvent struct {
	BaseEvent

	Report *Report `json:"report"`
}

// redisPublisher is the subset of *redis.Client used by Publisher.
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// Publisher publishes reports to Redis.
type Publisher struct {
	client  redisPublisher
	channel string
	logger  logging.Logger
}

// PublisherConfig holds Redis connection configuration.
type PublisherConfig struct {
	Address  string
	Password string
	DB       int
	Channel  string
}

// NewPublisher creates a report publisher. An empty channel uses
// ChannelReportExported.
func NewPublisher(client redisPublisher, channel string, logger logging.Logger) *Publisher {
	if channel == "" {
		channel = ChannelReportExported
	}
	return &Publisher{
		client:  client,
		channel: channel,
		logger:  logger.With(logging.F("component", "report_publisher")),
	}
}

// NewPublisherFromConfig creates a publisher with a new Redis connection.
func NewPublisherFromConfig(ctx context.Context, cfg PublisherConfig, logger logging.Logger) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return NewPublisher(client, cfg.Channel, logger), nil
}

// Channel returns the channel reports are published on.
func (p *Publisher) Channel() string {
	return p.channel
}

// Publish serializes and publishes a report. It returns the number of
// subscribers that received it.
func (p *Publisher) Publish(ctx context.Context, r *Report) (int64, error) {
	event := ReportExportedEvent{
		BaseEvent: NewBaseEvent("chat_report.exported"),
		Report:    r,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, data).Result()
	if err != nil {
		p.logger.Error("Failed to publish report",
			logging.Err(err),
			logging.F("channel", p.channel),
			logging.F("run_id", r.RunID))
		return 0, fmt.Errorf("failed to publish to %s: %w", p.channel, err)
	}

	p.logger.Debug("Report published",
		logging.F("channel", p.channel),
		logging.F("run_id", r.RunID),
		logging.F("payload_size", len(data)),
		logging.F("receivers", receivers))

	return receivers, nil
}

// Close closes the Redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
