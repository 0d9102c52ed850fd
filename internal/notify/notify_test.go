package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
	err    error
	block  chan struct{}
}

func (r *recordingNotifier) Notify(ctx context.Context, event Event) error {
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingNotifier) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func TestDispatcher_DeliversInBackground(t *testing.T) {
	rec := &recordingNotifier{block: make(chan struct{})}
	d := NewDispatcher(rec, zap.NewNop(), time.Second)

	d.Dispatch(Event{ID: "1", Kind: KindContactSubmitted})
	assert.Empty(t, rec.Events(), "dispatch must not wait for delivery")

	close(rec.block)
	require.NoError(t, d.Wait(context.Background()))
	require.Len(t, rec.Events(), 1)
	assert.Equal(t, "1", rec.Events()[0].ID)
}

func TestDispatcher_LogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	d := NewDispatcher(&recordingNotifier{err: errors.New("mail relay down")}, zap.New(core), time.Second)

	d.Dispatch(Event{ID: "2", Kind: KindNewsletterSubscribed})
	require.NoError(t, d.Wait(context.Background()))

	entries := logs.FilterMessage("notification failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "2", entries[0].ContextMap()["id"])
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	d := NewDispatcher(NotifierFunc(func(ctx context.Context, event Event) error {
		panic("boom")
	}), zap.New(core), time.Second)

	d.Dispatch(Event{ID: "3", Kind: KindPartnershipSubmitted})
	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("notification failed").Len())
}

func TestDispatcher_TimeoutBoundsDelivery(t *testing.T) {
	rec := &recordingNotifier{block: make(chan struct{})}
	d := NewDispatcher(rec, zap.NewNop(), 20*time.Millisecond)

	d.Dispatch(Event{ID: "4", Kind: KindContactSubmitted})
	require.NoError(t, d.Wait(context.Background()))
	assert.Empty(t, rec.Events())
}

func TestDispatcher_WaitHonorsContext(t *testing.T) {
	rec := &recordingNotifier{block: make(chan struct{})}
	d := NewDispatcher(rec, zap.NewNop(), time.Minute)
	d.Dispatch(Event{ID: "5", Kind: KindContactSubmitted})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	close(rec.block)
	require.NoError(t, d.Wait(context.Background()))
}

func TestDispatcher_NilSafe(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{})
	assert.NoError(t, d.Wait(context.Background()))

	NewDispatcher(nil, nil, 0).Dispatch(Event{})
}

func TestMulti(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{err: errors.New("crm offline")}
	c := &recordingNotifier{}

	err := Multi{a, nil, b, c}.Notify(context.Background(), Event{ID: "6"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crm offline")
	assert.Len(t, a.Events(), 1)
	assert.Len(t, c.Events(), 1)

	assert.NoError(t, Multi{a}.Notify(context.Background(), Event{}))
}

type fakePublisher struct {
	subject string
	data    []byte
	err     error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return f.err
}

func TestNATSNotifier(t *testing.T) {
	pub := &fakePublisher{}
	n := NewNATSNotifier(pub, "bondspire.intake.")

	event := Event{ID: "7", Kind: KindPartnershipSubmitted, Email: "jane@example.com", PartnershipTypes: []string{"other"}}
	require.NoError(t, n.Notify(context.Background(), event))
	assert.Equal(t, "bondspire.intake.partnership.submitted", pub.subject)

	var decoded Event
	require.NoError(t, json.Unmarshal(pub.data, &decoded))
	assert.Equal(t, event.Email, decoded.Email)
	assert.Equal(t, []string{"other"}, decoded.PartnershipTypes)

	pub.err = errors.New("nats: connection closed")
	assert.Error(t, n.Notify(context.Background(), event))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Notify(ctx, event), context.Canceled)

	assert.Error(t, NewNATSNotifier(nil, "x").Notify(context.Background(), event))
	assert.Equal(t, "newsletter.subscribed", NewNATSNotifier(pub, "").Subject(KindNewsletterSubscribed))
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Notify(context.Background(), Event{ID: "8", Kind: KindNewsletterSubscribed, Email: "jane@example.com", InterestArea: "all"}))
	entries := logs.FilterMessage("intake notification").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "jane@example.com", fields["email"])
	assert.Equal(t, "all", fields["interest_area"])
	assert.NotContains(t, fields, "organization_name")
}

func TestE164(t *testing.T) {
	assert.Equal(t, "+12015550123", E164(" (201) 555-0123 ", ""))
	assert.Equal(t, "+442079460958", E164("+44 20 7946 0958", "us"))
	assert.Equal(t, "", E164("12345", "US"))
	assert.Equal(t, "", E164("", "US"))
}
