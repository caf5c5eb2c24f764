package activity

import (
	"strings"
	"time"
)

// Verbs emitted by the formselect package.
const (
	VerbOptionSelected   = "option.selected"
	VerbOptionDeselected = "option.deselected"
	VerbSelectValueSet   = "select.value.set"
	VerbElementClicked   = "element.clicked"
	VerbSelectionRestore = "selection.restored"
)

// Object types carried by selection events.
const (
	ObjectTypeOption  = "option"
	ObjectTypeSelect  = "select"
	ObjectTypeElement = "element"
)

// SelectionEventInput describes the common fields of selection events.
type SelectionEventInput struct {
	ActorID    string
	DocumentID string
	PageURL    string
	Channel    string
	SelectName string
	ElementID  string
	Value      string
	Index      int
	// Cleared lists option values whose marker was removed as a side effect
	// of enforcing single selection.
	Cleared    []string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildOptionSelectedEvent constructs an event for an option gaining its
// selected marker.
func BuildOptionSelectedEvent(input SelectionEventInput) Event {
	return buildSelectionEvent(VerbOptionSelected, ObjectTypeOption, input)
}

// BuildOptionDeselectedEvent constructs an event for an option losing its
// selected marker.
func BuildOptionDeselectedEvent(input SelectionEventInput) Event {
	return buildSelectionEvent(VerbOptionDeselected, ObjectTypeOption, input)
}

// BuildSelectValueSetEvent constructs an event for a select value assignment.
func BuildSelectValueSetEvent(input SelectionEventInput) Event {
	return buildSelectionEvent(VerbSelectValueSet, ObjectTypeSelect, input)
}

// BuildElementClickedEvent constructs an event for a simulated click.
func BuildElementClickedEvent(input SelectionEventInput) Event {
	return buildSelectionEvent(VerbElementClicked, ObjectTypeElement, input)
}

// BuildSelectionRestoredEvent constructs an event for a snapshot being
// applied back onto a document.
func BuildSelectionRestoredEvent(input SelectionEventInput) Event {
	return buildSelectionEvent(VerbSelectionRestore, ObjectTypeSelect, input)
}

func buildSelectionEvent(verb, objectType string, input SelectionEventInput) Event {
	metadata := cloneMap(input.Metadata)
	selectName := strings.TrimSpace(input.SelectName)
	if selectName != "" {
		metadata = ensureMetadata(metadata)
		metadata["select_name"] = selectName
	}
	if objectType == ObjectTypeOption || input.Value != "" {
		metadata = ensureMetadata(metadata)
		metadata["value"] = input.Value
	}
	if objectType == ObjectTypeOption {
		metadata["index"] = input.Index
	}
	if len(input.Cleared) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["cleared"] = append([]string{}, input.Cleared...)
	}

	objectID := strings.TrimSpace(input.ElementID)
	if objectID == "" {
		objectID = selectName
	}
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		DocumentID: strings.TrimSpace(input.DocumentID),
		PageURL:    strings.TrimSpace(input.PageURL),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
