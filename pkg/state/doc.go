// Package state persists the selection state of the selects in a document
// and applies it back later, e.g. when a simulated browser navigates back to
// a page whose form the user had already filled in.
//
// Responsibilities:
//   - Store[T] only loads/saves a single snapshot for a single Ref.
//   - Recorder captures the selected option values of every named select in
//     a form into a Snapshot and restores them through Select.SetValues.
//   - The formselect package stays persistence-agnostic; all persistence
//     logic stays behind Store implementations supplied by consumers.
//
// Data flow:
//
//	Document -> Recorder.Capture -> Store.Save
//	Store.Load -> Recorder.Restore -> Select.SetValues
//
// Deterministic keys:
//
//	Ref.Identifier() provides a canonical storage key based on the page URL
//	and the form name (`page/<url>/form/<form>`). Selects outside any form
//	are captured with an empty Form and stored under `_document`.
package state
