package products

import (
	"context"
	"errors"
	"log"
	"sync"

	"sixgo.GO/client"
)

// ErrNothingToSave is surfaced as an inline notice; it never reaches the
// network.
var ErrNothingToSave = errors.New("no changes to save")

// NoteService writes the support note pair attached to a product or one of
// its variants. Every successful write invalidates the cached searches and
// refetches the current page so the table reflects the edit immediately.
type NoteService struct {
	client       *client.Client
	orchestrator *Orchestrator
}

func NewNoteService(c *client.Client, o *Orchestrator) *NoteService {
	return &NoteService{client: c, orchestrator: o}
}

// Save submits a note update.
func (s *NoteService) Save(ctx context.Context, update NoteUpdate) error {
	if err := s.client.Post(ctx, "/products/cs", update, nil); err != nil {
		return err
	}
	s.orchestrator.InvalidateSearches()
	if _, err := s.orchestrator.Refetch(ctx); err != nil && !errors.Is(err, ErrMainCategoryRequired) {
		log.Printf("notes: refetch after save failed: %v", err)
	}
	return nil
}

// Delete forces both note fields empty for the addressed product/variant.
func (s *NoteService) Delete(ctx context.Context, productID string, variantID *string) error {
	empty := ""
	return s.Save(ctx, NoteUpdate{
		ProductID:       productID,
		VariantID:       variantID,
		CSImportantNote: &empty,
		CSSpecialPoint:  &empty,
	})
}

// NoteEditor is the local edit state for one note pair. It is independent
// of the server round trip: drafts live here until saved or cancelled.
// A product-level note and each variant-level note get their own editor.
type NoteEditor struct {
	mu        sync.Mutex
	productID string
	variantID *string

	baseImportant  string
	baseSpecial    string
	draftImportant string
	draftSpecial   string
	editing        bool
}

// NewNoteEditor seeds an editor from the server-provided current values.
// variantID nil means the note belongs to the product itself.
func NewNoteEditor(productID string, variantID *string, important, special string) *NoteEditor {
	return &NoteEditor{
		productID:      productID,
		variantID:      variantID,
		baseImportant:  important,
		baseSpecial:    special,
		draftImportant: important,
		draftSpecial:   special,
	}
}

// Seed refreshes the baseline from new server values. Ignored while the
// operator is editing so an in-progress draft is never clobbered.
func (e *NoteEditor) Seed(important, special string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editing {
		return
	}
	e.baseImportant = important
	e.baseSpecial = special
	e.draftImportant = important
	e.draftSpecial = special
}

// BeginEdit enters edit mode.
func (e *NoteEditor) BeginEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = true
}

// IsEditing reports edit mode.
func (e *NoteEditor) IsEditing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}

// SetDrafts overwrites the draft pair.
func (e *NoteEditor) SetDrafts(important, special string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draftImportant = important
	e.draftSpecial = special
}

// Drafts returns the current draft pair.
func (e *NoteEditor) Drafts() (important, special string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draftImportant, e.draftSpecial
}

// Dirty reports whether either draft differs from the server baseline.
func (e *NoteEditor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draftImportant != e.baseImportant || e.draftSpecial != e.baseSpecial
}

// Save submits the drafts. With no changes it returns ErrNothingToSave and
// sends nothing. Empty drafts are submitted as unset. On success the
// editor leaves edit mode and the drafts become the new baseline.
func (e *NoteEditor) Save(ctx context.Context, svc *NoteService) error {
	if !e.Dirty() {
		return ErrNothingToSave
	}

	e.mu.Lock()
	update := NoteUpdate{
		ProductID:       e.productID,
		VariantID:       e.variantID,
		CSImportantNote: unsetIfEmpty(e.draftImportant),
		CSSpecialPoint:  unsetIfEmpty(e.draftSpecial),
	}
	e.mu.Unlock()

	if err := svc.Save(ctx, update); err != nil {
		return err
	}

	e.mu.Lock()
	e.baseImportant = e.draftImportant
	e.baseSpecial = e.draftSpecial
	e.editing = false
	e.mu.Unlock()
	return nil
}

// Delete clears the note pair server-side, then drops drafts and edit mode
// regardless of prior dirty state.
func (e *NoteEditor) Delete(ctx context.Context, svc *NoteService) error {
	e.mu.Lock()
	productID, variantID := e.productID, e.variantID
	e.mu.Unlock()

	if err := svc.Delete(ctx, productID, variantID); err != nil {
		return err
	}

	e.mu.Lock()
	e.baseImportant = ""
	e.baseSpecial = ""
	e.draftImportant = ""
	e.draftSpecial = ""
	e.editing = false
	e.mu.Unlock()
	return nil
}

// Cancel discards the drafts back to the last known server values and
// leaves edit mode without submitting.
func (e *NoteEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draftImportant = e.baseImportant
	e.draftSpecial = e.baseSpecial
	e.editing = false
}

func unsetIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
