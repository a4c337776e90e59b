package proofing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/printshop/printshop-api/models"
	"golang.org/x/text/language"
)

var (
	// ErrUnknownCandidate indicates an order line that is not offered for proofing.
	ErrUnknownCandidate = errors.New("order detail is not a proofing candidate")

	// ErrMaterialMismatch indicates a line whose material differs from the pinned one.
	ErrMaterialMismatch = errors.New("material type differs from the selected designs")

	// ErrNoMaterial indicates a line whose design has no material type.
	ErrNoMaterial = errors.New("order detail has no material type")

	// ErrNotSelected indicates a quantity change for a line that is not selected.
	ErrNotSelected = errors.New("order detail is not selected")
)

// Candidate is an order line that still has quantity to proof.
type Candidate struct {
	OrderDetailID     uint
	OrderID           uint
	DesignCode        string
	DesignName        string
	MaterialTypeID    uint
	Quantity          int
	AvailableQuantity int
}

// CandidatesFrom keeps the lines that still have quantity available and a
// design with a material type.
func CandidatesFrom(details []models.OrderDetail) []Candidate {
	out := make([]Candidate, 0, len(details))
	for _, d := range details {
		if d.AvailableQuantity <= 0 || d.MaterialTypeID() == 0 {
			continue
		}
		c := Candidate{
			OrderDetailID:     d.ID,
			OrderID:           d.OrderID,
			MaterialTypeID:    d.MaterialTypeID(),
			Quantity:          d.Quantity,
			AvailableQuantity: d.AvailableQuantity,
		}
		if d.Design != nil {
			c.DesignCode = d.Design.Code
			c.DesignName = d.Design.Name
		}
		out = append(out, c)
	}
	return out
}

// Line is a selected candidate with the quantity to take.
type Line struct {
	Candidate
	Quantity int
}

// API is the part of the backend a submission needs. *apiclient.Client
// satisfies it.
type API interface {
	GetPaperSizes(ctx context.Context) ([]models.PaperSize, error)
	CreatePaperSize(ctx context.Context, req models.CreatePaperSizeRequest) (*models.PaperSize, error)
	AddDesignsToProofingOrder(ctx context.Context, proofingOrderID uint, req models.AddDesignsToProofingOrderRequest) (*models.ProofingOrder, error)
}

// Selection is the allocation form for one proofing order. The first
// selected line pins the material type until nothing is selected.
type Selection struct {
	mu         sync.Mutex
	candidates map[uint]Candidate
	selected   map[uint]int
	material   uint
	pinned     bool

	sheetQuantity   int
	paperSizeID     *uint
	customPaperSize string
	notes           string

	pending bool
}

// NewSelection offers the given candidates.
func NewSelection(candidates []Candidate) *Selection {
	s := &Selection{
		candidates: make(map[uint]Candidate, len(candidates)),
		selected:   make(map[uint]int),
	}
	for _, c := range candidates {
		s.candidates[c.OrderDetailID] = c
	}
	return s
}

// Select adds a line with its full available quantity.
func (s *Selection) Select(orderDetailID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[orderDetailID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCandidate, orderDetailID)
	}
	if _, already := s.selected[orderDetailID]; already {
		return nil
	}
	if c.MaterialTypeID == 0 {
		return fmt.Errorf("%w: %d", ErrNoMaterial, orderDetailID)
	}
	if s.pinned && c.MaterialTypeID != s.material {
		return fmt.Errorf("%w: order detail %d", ErrMaterialMismatch, orderDetailID)
	}

	s.material = c.MaterialTypeID
	s.pinned = true
	s.selected[orderDetailID] = c.AvailableQuantity
	return nil
}

// Deselect removes a line. The material pin is released with the last line.
func (s *Selection) Deselect(orderDetailID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.selected, orderDetailID)
	if len(s.selected) == 0 {
		s.material = 0
		s.pinned = false
	}
}

// SetQuantity clamps q to [0, available] and returns the stored value.
func (s *Selection) SetQuantity(orderDetailID uint, q int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selected[orderDetailID]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrNotSelected, orderDetailID)
	}
	available := s.candidates[orderDetailID].AvailableQuantity
	q = min(max(q, 0), available)
	s.selected[orderDetailID] = q
	return q, nil
}

// SetSheetQuantity sets the number of print sheets.
func (s *Selection) SetSheetQuantity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheetQuantity = n
}

// SetPaperSize picks an existing paper size.
func (s *Selection) SetPaperSize(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paperSizeID = &id
	s.customPaperSize = ""
}

// SetCustomPaperSize names a paper size by free text. It is matched against
// existing sizes, or created, on submit.
func (s *Selection) SetCustomPaperSize(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paperSizeID = nil
	s.customPaperSize = strings.TrimSpace(name)
}

// SetNotes sets the free-text notes.
func (s *Selection) SetNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
}

// MaterialTypeID is the pinned material, or 0 when nothing is selected.
func (s *Selection) MaterialTypeID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.material
}

// Lines returns the selected lines ordered by order detail id.
func (s *Selection) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines()
}

func (s *Selection) lines() []Line {
	out := make([]Line, 0, len(s.selected))
	for id, q := range s.selected {
		out = append(out, Line{Candidate: s.candidates[id], Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDetailID < out[j].OrderDetailID })
	return out
}

// Pending reports whether a submission is in flight.
func (s *Selection) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Validate checks the selection before submit. The message of the returned
// *Error is in lang, Vietnamese when lang is not supported.
func (s *Selection) Validate(lang language.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validate(lang)
}

func (s *Selection) validate(lang language.Tag) error {
	lines := s.lines()

	taken := 0
	for _, l := range lines {
		if l.Quantity > 0 {
			taken++
		}
	}
	if taken == 0 {
		return newError(lang, CodeNoItems)
	}

	if s.sheetQuantity <= 0 || s.sheetQuantity > models.MaxSheetQuantity {
		return newError(lang, CodeInvalidSheetQuantity, models.MaxSheetQuantity)
	}

	for _, l := range lines {
		if l.Quantity > l.AvailableQuantity {
			return newError(lang, CodeQuantityExceeded, lineName(l), l.Quantity, l.AvailableQuantity)
		}
	}

	for _, l := range lines {
		if l.MaterialTypeID == 0 || l.MaterialTypeID != lines[0].MaterialTypeID {
			return newError(lang, CodeMaterialMismatch)
		}
	}
	return nil
}

func lineName(l Line) string {
	if l.DesignCode != "" {
		return l.DesignCode
	}
	return fmt.Sprintf("#%d", l.OrderDetailID)
}

// Submit validates the selection and sends it as one batch. A custom paper
// size is resolved first, creating it when no existing size matches. On
// failure every selection is kept; on success the selection is cleared.
func (s *Selection) Submit(ctx context.Context, api API, proofingOrderID uint, lang language.Tag) (*models.ProofingOrder, error) {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return nil, newError(lang, CodeSubmitting)
	}
	if err := s.validate(lang); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	req := models.AddDesignsToProofingOrderRequest{TotalQuantity: s.sheetQuantity}
	for _, l := range s.lines() {
		if l.Quantity > 0 {
			req.Items = append(req.Items, models.ProofingItemRequest{OrderDetailID: l.OrderDetailID, Quantity: l.Quantity})
		}
	}
	if notes := strings.TrimSpace(s.notes); notes != "" {
		req.Notes = &notes
	}
	paperSizeID := s.paperSizeID
	custom := s.customPaperSize
	s.pending = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
	}()

	if paperSizeID == nil && custom != "" {
		id, err := resolvePaperSize(ctx, api, custom)
		if err != nil {
			return nil, submitFailed(lang, err)
		}
		paperSizeID = &id
	}
	req.PaperSizeID = paperSizeID

	po, err := api.AddDesignsToProofingOrder(ctx, proofingOrderID, req)
	if err != nil {
		return nil, submitFailed(lang, err)
	}

	s.mu.Lock()
	s.selected = make(map[uint]int)
	s.material = 0
	s.pinned = false
	s.mu.Unlock()
	return po, nil
}

func submitFailed(lang language.Tag, err error) *Error {
	e := newError(lang, CodeSubmitFailed, err)
	e.Err = err
	return e
}

// resolvePaperSize finds a paper size by name, ignoring case, or creates it.
func resolvePaperSize(ctx context.Context, api API, name string) (uint, error) {
	sizes, err := api.GetPaperSizes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load paper sizes: %w", err)
	}
	for _, ps := range sizes {
		if strings.EqualFold(strings.TrimSpace(ps.Name), name) {
			return ps.ID, nil
		}
	}

	created, err := api.CreatePaperSize(ctx, models.CreatePaperSizeRequest{Name: name, IsCustom: true})
	if err != nil {
		return 0, fmt.Errorf("failed to create paper size %q: %w", name, err)
	}
	return created.ID, nil
}
