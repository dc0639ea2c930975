package main

import (
	"context"
	"testing"
	"time"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/events"
)

func TestOpenBus_Local(t *testing.T) {
	for _, driver := range []string{"", "local"} {
		bus, closeFn, err := openBus(context.Background(), driver, "")
		if err != nil {
			t.Fatalf("openBus(%q) error = %v", driver, err)
		}

		ch, cancel := bus.Subscribe(events.InvoiceUpdated)
		bus.Publish(events.InvoiceUpdated)
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Errorf("openBus(%q) bus did not deliver", driver)
		}
		cancel()

		if err := closeFn(); err != nil {
			t.Errorf("close error = %v", err)
		}
	}
}

func TestOpenBus_RedisIsConnected(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// nothing listens on port 1, so the redis driver must fail instead of
	// silently falling back to a process-local bus
	if _, _, err := openBus(ctx, "redis", "redis://127.0.0.1:1/0"); err == nil {
		t.Error("openBus(redis) with unreachable server error = nil")
	}
	if _, _, err := openBus(ctx, "redis", "not a url"); err == nil {
		t.Error("openBus(redis) with invalid url error = nil")
	}
}

func TestOpenBus_UnknownDriver(t *testing.T) {
	if _, _, err := openBus(context.Background(), "carrier-pigeon", ""); err == nil {
		t.Error("openBus(unknown) error = nil")
	}
}
