// Package nats publishes listing lifecycle events for downstream consumers
// (search indexers, notification services). Publishing is best-effort: the
// usecase logs failures and never fails the request over them.
package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/staymarket/listing-service/internal/entity"
)

const (
	subjectListingCreated = "listings.created"
	subjectListingUpdated = "listings.updated"
	subjectListingDeleted = "listings.deleted"
)

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats: connect to %s: %w", url, err)
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) PublishListingCreated(ctx context.Context, listing *entity.Listing) error {
	return p.publish(ctx, subjectListingCreated, listing)
}

func (p *Publisher) PublishListingUpdated(ctx context.Context, listing *entity.Listing) error {
	return p.publish(ctx, subjectListingUpdated, listing)
}

func (p *Publisher) PublishListingDeleted(_ context.Context, id int64) error {
	payload, err := json.Marshal(map[string]int64{"id": id})
	if err != nil {
		return err
	}
	return p.conn.Publish(subjectListingDeleted, payload)
}

func (p *Publisher) publish(_ context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("nats: encode event for %s: %w", subject, err)
	}
	return p.conn.Publish(subject, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
