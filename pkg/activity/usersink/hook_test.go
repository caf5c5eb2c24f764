package usersink_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-formselect/pkg/activity"
	"github.com/goliatone/go-formselect/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	tenantID := uuid.New()
	hook := usersink.Hook{Sink: sink, TenantID: tenantID}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	documentID := uuid.NewString()

	event := activity.BuildOptionSelectedEvent(activity.SelectionEventInput{
		ActorID:    actorID.String(),
		DocumentID: documentID,
		PageURL:    "https://example.com/order",
		Channel:    "formselect",
		SelectName: "color",
		Value:      "red",
		Index:      1,
		OccurredAt: now,
	})

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID || record.UserID != actorID {
		t.Fatalf("expected actor %s as actor and user, got %s/%s", actorID, record.ActorID, record.UserID)
	}
	if record.TenantID != tenantID {
		t.Fatalf("expected tenant %s got %s", tenantID, record.TenantID)
	}
	if record.Verb != activity.VerbOptionSelected || record.ObjectType != "option" || record.ObjectID != "color" {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "formselect" {
		t.Fatalf("expected channel formselect got %q", record.Channel)
	}
	if !record.OccurredAt.Equal(now) {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["document_id"] != documentID {
		t.Fatalf("expected document_id data got %v", record.Data["document_id"])
	}
	if record.Data["page_url"] != "https://example.com/order" {
		t.Fatalf("expected page_url data got %v", record.Data["page_url"])
	}
	if record.Data["value"] != "red" {
		t.Fatalf("expected metadata passthrough got %v", record.Data["value"])
	}
}

func TestHookNotifyNonUUIDActor(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       activity.VerbElementClicked,
		ActorID:    "session-abc",
		ObjectType: "element",
		ObjectID:   "submit",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	if sink.records[0].ActorID != uuid.Nil {
		t.Fatalf("expected nil uuid for non-uuid actor, got %s", sink.records[0].ActorID)
	}
	if sink.records[0].OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be defaulted")
	}
}

func TestHookNotifySkipsIncompleteEvents(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})
	_ = hook.Notify(context.Background(), activity.Event{Verb: "x", ObjectType: "option"})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records for incomplete events, got %d", len(sink.records))
	}
}

func TestHookWithoutSinkIsNoop(t *testing.T) {
	hook := usersink.Hook{}
	if err := hook.Notify(context.Background(), activity.Event{Verb: "x", ObjectType: "o", ObjectID: "1"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
