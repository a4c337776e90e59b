package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/utils"
)

var (
	// ErrDesignTypeNotFound indicates no design type has the given id or code.
	ErrDesignTypeNotFound = errors.New("design type not found")

	// ErrDuplicateDesignTypeCode indicates another design type already uses the code.
	ErrDuplicateDesignTypeCode = errors.New("design type code already exists")

	// ErrDesignTypeInUse indicates the design type is referenced and cannot be deleted.
	ErrDesignTypeInUse = errors.New("design type is in use and cannot be deleted")
)

// DefaultProtectedDesignTypeIDs are seed records treated as referenced by designs.
var DefaultProtectedDesignTypeIDs = []string{"1", "2", "3", "4", "5"}

// DesignTypeService is an in-memory stand-in for the design type catalog.
// Every call waits for the configured latency to mimic a network round trip.
type DesignTypeService struct {
	mu        sync.RWMutex
	seed      []models.DesignType
	items     []models.DesignType
	latency   time.Duration
	clock     utils.Clock
	protected map[string]struct{}
	newID     func() string
}

// DesignTypeOption configures a DesignTypeService.
type DesignTypeOption func(*DesignTypeService)

// WithLatency sets the artificial delay applied to every operation.
func WithLatency(d time.Duration) DesignTypeOption {
	return func(s *DesignTypeService) { s.latency = d }
}

// WithClock sets the clock used to stamp createdAt/updatedAt.
func WithClock(c utils.Clock) DesignTypeOption {
	return func(s *DesignTypeService) { s.clock = c }
}

// WithProtectedIDs replaces the ids that cannot be deleted.
func WithProtectedIDs(ids ...string) DesignTypeOption {
	return func(s *DesignTypeService) {
		s.protected = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			s.protected[id] = struct{}{}
		}
	}
}

// WithIDGenerator replaces the random id generator.
func WithIDGenerator(fn func() string) DesignTypeOption {
	return func(s *DesignTypeService) { s.newID = fn }
}

// NewDesignTypeService creates a service holding a copy of seed.
func NewDesignTypeService(seed []models.DesignType, opts ...DesignTypeOption) *DesignTypeService {
	s := &DesignTypeService{
		seed:  cloneDesignTypes(seed),
		clock: utils.RealClock{},
		newID: uuid.NewString,
	}
	WithProtectedIDs(DefaultProtectedDesignTypeIDs...)(s)
	for _, opt := range opts {
		opt(s)
	}
	s.items = cloneDesignTypes(s.seed)
	return s
}

var designTypeServiceInstance *DesignTypeService

// InitDesignTypeService installs the process-wide design type service
func InitDesignTypeService(svc *DesignTypeService) *DesignTypeService {
	designTypeServiceInstance = svc
	return svc
}

// GetDesignTypeService returns the installed design type service
func GetDesignTypeService() *DesignTypeService {
	return designTypeServiceInstance
}

// Reset restores the seed state.
func (s *DesignTypeService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = cloneDesignTypes(s.seed)
}

// GetAll returns every design type ordered by sortOrder.
func (s *DesignTypeService) GetAll(ctx context.Context) ([]models.DesignType, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedDesignTypes(s.items, func(models.DesignType) bool { return true }), nil
}

// GetActive returns the active design types ordered by sortOrder.
func (s *DesignTypeService) GetActive(ctx context.Context) ([]models.DesignType, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedDesignTypes(s.items, func(dt models.DesignType) bool { return dt.IsActive }), nil
}

// GetByID returns one design type.
func (s *DesignTypeService) GetByID(ctx context.Context, id string) (*models.DesignType, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexByID(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: id %q", ErrDesignTypeNotFound, id)
	}
	dt := cloneDesignType(s.items[i])
	return &dt, nil
}

// GetByCode returns the design type with the given code, ignoring case.
func (s *DesignTypeService) GetByCode(ctx context.Context, code string) (*models.DesignType, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexByCode(normalizeCode(code))
	if i < 0 {
		return nil, fmt.Errorf("%w: code %q", ErrDesignTypeNotFound, code)
	}
	dt := cloneDesignType(s.items[i])
	return &dt, nil
}

// Create adds a design type. The code is stored upper-cased and must be unique.
func (s *DesignTypeService) Create(ctx context.Context, req models.CreateDesignTypeRequest, actor string) (*models.DesignType, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}
	code := normalizeCode(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" {
		return nil, utils.NewValidationError("code", "required", "")
	}
	if name == "" {
		return nil, utils.NewValidationError("name", "required", "")
	}

	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByCode(code) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateDesignTypeCode, code)
	}

	now := s.clock.Now()
	dt := models.DesignType{
		ID:          s.newID(),
		Code:        code,
		Name:        name,
		Description: trimmedPtr(req.Description),
		CodeFormat:  strings.TrimSpace(req.CodeFormat),
		SortOrder:   s.nextSortOrder(),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   actor,
		UpdatedBy:   actor,
	}
	if req.SortOrder != nil {
		dt.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		dt.IsActive = *req.IsActive
	}

	s.items = append(s.items, dt)
	out := cloneDesignType(dt)
	return &out, nil
}

// Update applies a partial update. Renaming to a code held by another record fails.
func (s *DesignTypeService) Update(ctx context.Context, id string, req models.UpdateDesignTypeRequest, actor string) (*models.DesignType, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}
	for field, n := range map[string]interface{ IsNull() bool }{
		"code":      req.Code,
		"name":      req.Name,
		"sortOrder": req.SortOrder,
		"isActive":  req.IsActive,
	} {
		if n.IsNull() {
			return nil, utils.NewValidationError(field, "required", "")
		}
	}

	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: id %q", ErrDesignTypeNotFound, id)
	}
	dt := cloneDesignType(s.items[i])

	if code, ok := req.Code.Get(); ok {
		code = normalizeCode(code)
		if code == "" {
			return nil, utils.NewValidationError("code", "required", "")
		}
		if j := s.indexByCode(code); j >= 0 && j != i {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDesignTypeCode, code)
		}
		dt.Code = code
	}
	if name, ok := req.Name.Get(); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, utils.NewValidationError("name", "required", "")
		}
		dt.Name = name
	}
	if req.Description.IsSet() {
		dt.Description = trimmedPtr(req.Description.Ptr())
	}
	if req.CodeFormat.IsNull() {
		dt.CodeFormat = ""
	} else if format, ok := req.CodeFormat.Get(); ok {
		dt.CodeFormat = strings.TrimSpace(format)
	}
	if order, ok := req.SortOrder.Get(); ok {
		dt.SortOrder = order
	}
	if active, ok := req.IsActive.Get(); ok {
		dt.IsActive = active
	}

	dt.UpdatedAt = s.clock.Now()
	dt.UpdatedBy = actor
	s.items[i] = dt

	out := cloneDesignType(dt)
	return &out, nil
}

// Delete removes a design type unless it is protected.
func (s *DesignTypeService) Delete(ctx context.Context, id string) error {
	if err := s.delay(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return fmt.Errorf("%w: id %q", ErrDesignTypeNotFound, id)
	}
	if _, ok := s.protected[id]; ok {
		return fmt.Errorf("%w: %s", ErrDesignTypeInUse, s.items[i].Code)
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// GenerateDesignCode builds the next design code using the type's format.
func (s *DesignTypeService) GenerateDesignCode(ctx context.Context, designTypeID, customerCode string, number int, date time.Time) (string, error) {
	dt, err := s.GetByID(ctx, designTypeID)
	if err != nil {
		return "", err
	}
	return GenerateDesignCode(dt.CodeFormat, strings.TrimSpace(customerCode), dt.Code, number, date), nil
}

func (s *DesignTypeService) delay(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *DesignTypeService) indexByID(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *DesignTypeService) indexByCode(code string) int {
	for i := range s.items {
		if s.items[i].Code == code {
			return i
		}
	}
	return -1
}

func (s *DesignTypeService) nextSortOrder() int {
	next := 1
	for _, dt := range s.items {
		if dt.SortOrder >= next {
			next = dt.SortOrder + 1
		}
	}
	return next
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func trimmedPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func sortedDesignTypes(items []models.DesignType, keep func(models.DesignType) bool) []models.DesignType {
	out := make([]models.DesignType, 0, len(items))
	for _, dt := range items {
		if keep(dt) {
			out = append(out, cloneDesignType(dt))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

func cloneDesignType(dt models.DesignType) models.DesignType {
	if dt.Description != nil {
		d := *dt.Description
		dt.Description = &d
	}
	return dt
}

func cloneDesignTypes(items []models.DesignType) []models.DesignType {
	out := make([]models.DesignType, len(items))
	for i, dt := range items {
		out[i] = cloneDesignType(dt)
	}
	return out
}
