package events_test

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"
	"go.uber.org/zap"

	"github.com/quickserve/catalog-service/internal/events"
)

func TestNewPublisherWithoutBrokers(t *testing.T) {
	c := qt.New(t)

	pub := events.NewPublisher(&events.Config{Topic: "catalog.events"}, zap.NewNop())
	c.Assert(pub, qt.IsNil)
}

func TestNilPublisherIsSafe(t *testing.T) {
	c := qt.New(t)

	var pub *events.Publisher
	pub.Publish(context.Background(), events.CategoryCreated, map[string]int64{"id": 1})
	c.Assert(pub.Close(), qt.IsNil)
}
