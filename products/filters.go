package products

import (
	"sync"
)

// Field names one multi-select filter dimension.
type Field string

const (
	FieldCategoryCodes            Field = "categoryCodes"
	FieldLangCodes                Field = "langCodes"
	FieldLocationCodes            Field = "locationCodes"
	FieldProgressMethodCodes      Field = "progressMethodCodes"
	FieldProductTypeCodes         Field = "productTypeCodes"
	FieldNumberOfProgresses       Field = "numberOfProgresses"
	FieldNumberOfProgressPerWeeks Field = "numberOfProgressPerWeeks"
)

// Fields lists every multi-select dimension.
var Fields = []Field{
	FieldCategoryCodes,
	FieldLangCodes,
	FieldLocationCodes,
	FieldProgressMethodCodes,
	FieldProductTypeCodes,
	FieldNumberOfProgresses,
	FieldNumberOfProgressPerWeeks,
}

// dependentFields are cleared whenever the main category changes; their
// valid option sets depend on it. Languages and locations survive.
var dependentFields = []Field{
	FieldCategoryCodes,
	FieldProgressMethodCodes,
	FieldProductTypeCodes,
}

// Origin tags who produced an applied-state update, so the pending-sync
// logic can ignore updates this component itself produced instead of
// visibly reverting an in-flight selection.
type Origin int

const (
	// OriginApply: the operator committed a pending selection (or an
	// equivalent internal mutation). Pending state already reflects it.
	OriginApply Origin = iota
	// OriginExternal: the applied set changed from outside the selection
	// flow (reset, clear-all, programmatic overwrite). Pending re-syncs.
	OriginExternal
)

// FilterState owns the applied filter set, the pending selections, and the
// debounced search input. All transitions run under one lock; the UI event
// thread discipline of the original maps to serialized method calls here.
type FilterState struct {
	mu          sync.Mutex
	applied     FilterParams
	pending     PendingSelections
	searchInput string
	debouncer   *Debouncer
	onChange    func(FilterParams, Origin)
}

func NewFilterState() *FilterState {
	return &FilterState{
		applied:   DefaultFilters(),
		debouncer: NewDebouncer(SearchDebounce),
	}
}

// OnChange registers the listener notified after every applied-set update.
// The orchestrator hangs its refetch off this.
func (s *FilterState) OnChange(fn func(FilterParams, Origin)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Applied returns a copy of the committed filter set.
func (s *FilterState) Applied() FilterParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFilters(s.applied)
}

// Pending returns a copy of the draft selections.
func (s *FilterState) Pending() PendingSelections {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyPending(s.pending)
}

// SearchInput returns the raw, possibly not-yet-committed search text.
func (s *FilterState) SearchInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchInput
}

// SetMainCategory commits a new main category and cascades: the three
// dependent dimensions become unset in applied state and empty in pending
// state. Languages and locations are untouched.
func (s *FilterState) SetMainCategory(code string) {
	s.mu.Lock()
	s.applied.MainCategoryCode = code
	for _, f := range dependentFields {
		s.setAppliedField(f, nil, nil)
		s.setPendingField(f, nil, nil)
	}
	s.applied.PageNumber = 1
	s.notifyLocked(OriginApply)
	s.mu.Unlock()
}

// SetPending overwrites one pending dimension. Applied state is untouched.
func (s *FilterState) SetPending(field Field, codes []string, numbers []int) {
	s.mu.Lock()
	s.setPendingField(field, codes, numbers)
	s.mu.Unlock()
}

// ApplyField commits the pending value of one dimension into applied state.
// An empty selection becomes unset, so the query omits the parameter.
func (s *FilterState) ApplyField(field Field) {
	s.mu.Lock()
	codes, numbers := s.pendingField(field)
	s.setAppliedField(field, codes, numbers)
	s.applied.PageNumber = 1
	s.notifyLocked(OriginApply)
	s.mu.Unlock()
}

// ClearField empties one pending dimension and unsets its applied value.
func (s *FilterState) ClearField(field Field) {
	s.mu.Lock()
	s.setPendingField(field, nil, nil)
	s.setAppliedField(field, nil, nil)
	s.applied.PageNumber = 1
	s.notifyLocked(OriginApply)
	s.mu.Unlock()
}

// SetSearchInput records a keystroke and restarts the quiet-period timer.
// The term reaches applied state only after SearchDebounce of silence.
func (s *FilterState) SetSearchInput(text string) {
	s.mu.Lock()
	s.searchInput = text
	s.mu.Unlock()
	s.debouncer.Trigger(func() { s.commitSearch(text) })
}

// FlushSearch commits a pending search keystroke immediately.
func (s *FilterState) FlushSearch() {
	s.debouncer.Flush()
}

func (s *FilterState) commitSearch(text string) {
	s.mu.Lock()
	if s.applied.SearchTerm == text {
		s.mu.Unlock()
		return
	}
	s.applied.SearchTerm = text
	s.applied.PageNumber = 1
	s.notifyLocked(OriginApply)
	s.mu.Unlock()
}

// SetPage moves to a page without touching any other filter.
func (s *FilterState) SetPage(pageNumber int) {
	s.mu.Lock()
	s.applied.PageNumber = pageNumber
	s.notifyLocked(OriginApply)
	s.mu.Unlock()
}

// SetPageSize changes the page size and returns to page 1.
func (s *FilterState) SetPageSize(pageSize int) {
	s.mu.Lock()
	s.applied.PageSize = pageSize
	s.applied.PageNumber = 1
	s.notifyLocked(OriginApply)
	s.mu.Unlock()
}

// ResetFilters collapses everything to defaults but keeps the main
// category. Pending state re-syncs (to empty) because the update is
// external to the selection flow.
func (s *FilterState) ResetFilters() {
	s.mu.Lock()
	keep := s.applied.MainCategoryCode
	s.applied = DefaultFilters()
	s.applied.MainCategoryCode = keep
	s.searchInput = ""
	s.syncPendingLocked()
	s.notifyLocked(OriginExternal)
	s.mu.Unlock()
	s.debouncer.Cancel()
}

// ClearAllFilters collapses everything to defaults including the main
// category. Search stays disabled until a new one is chosen.
func (s *FilterState) ClearAllFilters() {
	s.mu.Lock()
	s.applied = DefaultFilters()
	s.searchInput = ""
	s.syncPendingLocked()
	s.notifyLocked(OriginExternal)
	s.mu.Unlock()
	s.debouncer.Cancel()
}

// SetApplied overwrites the whole applied set from outside (deep link,
// saved view). Non-pagination changes land on page 1; pending re-syncs.
func (s *FilterState) SetApplied(params FilterParams) {
	s.mu.Lock()
	params.PageNumber = 1
	if params.PageSize == 0 {
		params.PageSize = DefaultPageSize
	}
	s.applied = copyFilters(params)
	s.searchInput = params.SearchTerm
	s.syncPendingLocked()
	s.notifyLocked(OriginExternal)
	s.mu.Unlock()
}

// syncPendingLocked overwrites every pending dimension from applied state,
// unset mapping to empty. Runs only for external updates: apply-originated
// updates already match pending, and re-syncing them would flash-revert a
// selection mid-interaction.
func (s *FilterState) syncPendingLocked() {
	s.pending = PendingSelections{
		CategoryCodes:            emptyIfNilStrings(s.applied.CategoryCodes),
		LangCodes:                emptyIfNilStrings(s.applied.LangCodes),
		LocationCodes:            emptyIfNilStrings(s.applied.LocationCodes),
		ProgressMethodCodes:      emptyIfNilStrings(s.applied.ProgressMethodCodes),
		ProductTypeCodes:         emptyIfNilStrings(s.applied.ProductTypeCodes),
		NumberOfProgresses:       emptyIfNilInts(s.applied.NumberOfProgresses),
		NumberOfProgressPerWeeks: emptyIfNilInts(s.applied.NumberOfProgressPerWeeks),
	}
}

func (s *FilterState) notifyLocked(origin Origin) {
	if s.onChange != nil {
		s.onChange(copyFilters(s.applied), origin)
	}
}

func (s *FilterState) pendingField(field Field) ([]string, []int) {
	switch field {
	case FieldCategoryCodes:
		return s.pending.CategoryCodes, nil
	case FieldLangCodes:
		return s.pending.LangCodes, nil
	case FieldLocationCodes:
		return s.pending.LocationCodes, nil
	case FieldProgressMethodCodes:
		return s.pending.ProgressMethodCodes, nil
	case FieldProductTypeCodes:
		return s.pending.ProductTypeCodes, nil
	case FieldNumberOfProgresses:
		return nil, s.pending.NumberOfProgresses
	case FieldNumberOfProgressPerWeeks:
		return nil, s.pending.NumberOfProgressPerWeeks
	}
	return nil, nil
}

func (s *FilterState) setPendingField(field Field, codes []string, numbers []int) {
	switch field {
	case FieldCategoryCodes:
		s.pending.CategoryCodes = emptyIfNilStrings(codes)
	case FieldLangCodes:
		s.pending.LangCodes = emptyIfNilStrings(codes)
	case FieldLocationCodes:
		s.pending.LocationCodes = emptyIfNilStrings(codes)
	case FieldProgressMethodCodes:
		s.pending.ProgressMethodCodes = emptyIfNilStrings(codes)
	case FieldProductTypeCodes:
		s.pending.ProductTypeCodes = emptyIfNilStrings(codes)
	case FieldNumberOfProgresses:
		s.pending.NumberOfProgresses = emptyIfNilInts(numbers)
	case FieldNumberOfProgressPerWeeks:
		s.pending.NumberOfProgressPerWeeks = emptyIfNilInts(numbers)
	}
}

// setAppliedField normalizes an empty selection to unset (nil) so the
// outgoing query omits the parameter entirely.
func (s *FilterState) setAppliedField(field Field, codes []string, numbers []int) {
	switch field {
	case FieldCategoryCodes:
		s.applied.CategoryCodes = nilIfEmptyStrings(codes)
	case FieldLangCodes:
		s.applied.LangCodes = nilIfEmptyStrings(codes)
	case FieldLocationCodes:
		s.applied.LocationCodes = nilIfEmptyStrings(codes)
	case FieldProgressMethodCodes:
		s.applied.ProgressMethodCodes = nilIfEmptyStrings(codes)
	case FieldProductTypeCodes:
		s.applied.ProductTypeCodes = nilIfEmptyStrings(codes)
	case FieldNumberOfProgresses:
		s.applied.NumberOfProgresses = nilIfEmptyInts(numbers)
	case FieldNumberOfProgressPerWeeks:
		s.applied.NumberOfProgressPerWeeks = nilIfEmptyInts(numbers)
	}
}

func copyFilters(p FilterParams) FilterParams {
	cp := p
	cp.CategoryCodes = copyStrings(p.CategoryCodes)
	cp.LangCodes = copyStrings(p.LangCodes)
	cp.LocationCodes = copyStrings(p.LocationCodes)
	cp.ProgressMethodCodes = copyStrings(p.ProgressMethodCodes)
	cp.ProductTypeCodes = copyStrings(p.ProductTypeCodes)
	cp.NumberOfProgresses = copyInts(p.NumberOfProgresses)
	cp.NumberOfProgressPerWeeks = copyInts(p.NumberOfProgressPerWeeks)
	return cp
}

func copyPending(p PendingSelections) PendingSelections {
	return PendingSelections{
		CategoryCodes:            copyStrings(p.CategoryCodes),
		LangCodes:                copyStrings(p.LangCodes),
		LocationCodes:            copyStrings(p.LocationCodes),
		ProgressMethodCodes:      copyStrings(p.ProgressMethodCodes),
		ProductTypeCodes:         copyStrings(p.ProductTypeCodes),
		NumberOfProgresses:       copyInts(p.NumberOfProgresses),
		NumberOfProgressPerWeeks: copyInts(p.NumberOfProgressPerWeeks),
	}
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

func copyInts(in []int) []int {
	if in == nil {
		return nil
	}
	return append([]int{}, in...)
}

func emptyIfNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string{}, in...)
}

func emptyIfNilInts(in []int) []int {
	if in == nil {
		return []int{}
	}
	return append([]int{}, in...)
}

func nilIfEmptyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string{}, in...)
}

func nilIfEmptyInts(in []int) []int {
	if len(in) == 0 {
		return nil
	}
	return append([]int{}, in...)
}
