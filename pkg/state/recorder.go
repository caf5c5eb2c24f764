package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	formselect "github.com/goliatone/go-formselect"
	"github.com/goliatone/go-formselect/pkg/activity"
	"github.com/google/uuid"
)

// Recorder captures and restores the selection state of a form.
type Recorder struct {
	Store Store[Snapshot]
	// Now defaults to time.Now.
	Now func() time.Time
}

// Capture stores the selected option values of every named select in the
// form identified by ref. When meta carries an ETag it must match the stored
// one, otherwise ErrETagMismatch is returned and nothing is saved. Each save
// gets a fresh snapshot id, also used as the new ETag.
func (r Recorder) Capture(ctx context.Context, ref Ref, doc *formselect.Document, meta Meta) (Snapshot, Meta, error) {
	if r.Store == nil {
		return nil, Meta{}, fmt.Errorf("state: store is required")
	}
	if doc == nil {
		return nil, Meta{}, fmt.Errorf("state: document is required")
	}
	selects, err := doc.FormSelects(ref.Form)
	if err != nil {
		return nil, Meta{}, err
	}

	_, loadedMeta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("state: load %q: %w", ref.PageURL, err)
	}
	if !ok {
		loadedMeta = Meta{}
	}
	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return nil, loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	snapshot := Snapshot{}
	for _, sel := range selects {
		name := sel.Name()
		if name == "" {
			continue
		}
		for _, opt := range sel.SelectedOptions() {
			snapshot[name] = append(snapshot[name], opt.OptionValue())
		}
		if _, exists := snapshot[name]; !exists {
			snapshot[name] = []string{}
		}
	}

	id := uuid.NewString()
	saveMeta := mergeMeta(loadedMeta, Meta{
		SnapshotID: id,
		ETag:       id,
		UpdatedAt:  r.now(),
		Extra:      meta.Extra,
	})
	savedMeta, err := r.Store.Save(ctx, ref, snapshot, saveMeta)
	if err != nil {
		return nil, loadedMeta, fmt.Errorf("state: save %q: %w", ref.PageURL, err)
	}
	return snapshot.Clone(), savedMeta, nil
}

// Restore applies the stored snapshot for ref onto doc. Selects missing from
// the snapshot are left untouched. ok is false when nothing was stored.
func (r Recorder) Restore(ctx context.Context, ref Ref, doc *formselect.Document) (Meta, bool, error) {
	if r.Store == nil {
		return Meta{}, false, fmt.Errorf("state: store is required")
	}
	if doc == nil {
		return Meta{}, false, fmt.Errorf("state: document is required")
	}
	snapshot, meta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, false, fmt.Errorf("state: load %q: %w", ref.PageURL, err)
	}
	if !ok {
		return Meta{}, false, nil
	}
	selects, err := doc.FormSelects(ref.Form)
	if err != nil {
		return meta, true, err
	}

	var errs []error
	for _, sel := range selects {
		values, found := snapshot[sel.Name()]
		if sel.Name() == "" || !found {
			continue
		}
		sel.SetValues(values...)
		if err := doc.Notify(activity.BuildSelectionRestoredEvent(activity.SelectionEventInput{
			SelectName: sel.Name(),
			ElementID:  sel.ID(),
			Value:      strings.Join(values, ","),
			Metadata:   map[string]any{"snapshot_id": meta.SnapshotID},
		})); err != nil {
			errs = append(errs, err)
		}
	}
	return meta, true, errors.Join(errs...)
}

func (r Recorder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
