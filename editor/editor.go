package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/printshop/printshop-api/models"
	"go.uber.org/zap"
)

var (
	// ErrSaveInProgress indicates a save is in flight; the page must wait for it.
	ErrSaveInProgress = errors.New("a save is already in progress")

	// ErrUnknownItem indicates the order has no line item with the given id.
	ErrUnknownItem = errors.New("order has no such line item")

	// ErrNotEditing indicates Save was called with nothing being edited.
	ErrNotEditing = errors.New("nothing is being edited")
)

// Saver sends partial updates. *apiclient.Client satisfies it.
type Saver interface {
	UpdateOrder(ctx context.Context, id uint, req models.UpdateOrderRequest) (*models.Order, error)
	UpdateOrderDetail(ctx context.Context, id uint, req models.UpdateOrderDetailRequest) (*models.OrderDetail, error)
	UpdateCustomer(ctx context.Context, id uint, req models.UpdateCustomerRequest) (*models.Customer, error)
}

// RefetchFunc reloads the committed order after a successful save.
type RefetchFunc func(ctx context.Context, orderID uint) (*models.Order, error)

// OrderEditor is the edit state of one order page. Only one card or line
// item is edited at a time; beginning another edit drops the current draft.
// The committed order is never modified; a save only takes effect once the
// order is refetched.
type OrderEditor struct {
	mu      sync.Mutex
	saver   Saver
	refetch RefetchFunc
	loc     *time.Location
	logger  *zap.Logger

	order  *models.Order
	state  State
	target Target
	draft  any
}

// Option configures an OrderEditor.
type Option func(*OrderEditor)

// WithLocation sets the time zone date inputs are read in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(e *OrderEditor) { e.loc = loc }
}

// WithRefetch installs the hook called after every successful save.
func WithRefetch(fn RefetchFunc) Option {
	return func(e *OrderEditor) { e.refetch = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *OrderEditor) { e.logger = logger }
}

// NewOrderEditor starts in Viewing on the committed order.
func NewOrderEditor(order *models.Order, saver Saver, opts ...Option) *OrderEditor {
	e := &OrderEditor{
		saver:  saver,
		loc:    time.UTC,
		logger: zap.NewNop(),
		order:  order,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Order returns the committed order.
func (e *OrderEditor) Order() *models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.order
}

// State returns the current state and the target being edited, if any.
func (e *OrderEditor) State() (State, Target) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.target
}

// IsEditing reports whether t is the target being edited or saved.
func (e *OrderEditor) IsEditing(t Target) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state != Viewing && e.target == t
}

// Begin starts editing t with a draft seeded from the committed order.
// A draft of another target is discarded without saving. Beginning the
// target already being edited keeps its draft.
func (e *OrderEditor) Begin(t Target) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Saving {
		return ErrSaveInProgress
	}
	if e.state == Editing && e.target == t {
		return nil
	}

	draft, err := e.seedDraft(t)
	if err != nil {
		return err
	}

	if e.state == Editing && e.target != t {
		e.logger.Debug("Discarding draft", zap.String("target", e.target.Key()))
	}
	e.state = Editing
	e.target = t
	e.draft = draft
	return nil
}

func (e *OrderEditor) seedDraft(t Target) (any, error) {
	switch t.kind {
	case kindCustomerInfo:
		return newCustomerInfoDraft(e.order.Customer), nil
	case kindOrderInfo:
		return newOrderInfoDraft(e.order, e.loc), nil
	case kindPaymentInfo:
		return newPaymentInfoDraft(e.order), nil
	case kindRecipientInfo:
		return newRecipientInfoDraft(e.order), nil
	case kindOrderDetail:
		for i := range e.order.OrderDetails {
			if e.order.OrderDetails[i].ID == t.itemID {
				return newOrderDetailDraft(&e.order.OrderDetails[i]), nil
			}
		}
		return nil, fmt.Errorf("%w: %d", ErrUnknownItem, t.itemID)
	}
	return nil, fmt.Errorf("cannot edit target %q", t.Key())
}

// Cancel discards the draft and returns to Viewing.
func (e *OrderEditor) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Saving {
		return ErrSaveInProgress
	}
	e.reset()
	return nil
}

func (e *OrderEditor) reset() {
	e.state = Viewing
	e.target = Target{}
	e.draft = nil
}

// CustomerInfoDraft returns the draft while the customer card is edited.
func (e *OrderEditor) CustomerInfoDraft() (*CustomerInfoDraft, bool) {
	return draftAs[CustomerInfoDraft](e)
}

// OrderInfoDraft returns the draft while the order card is edited.
func (e *OrderEditor) OrderInfoDraft() (*OrderInfoDraft, bool) {
	return draftAs[OrderInfoDraft](e)
}

// PaymentInfoDraft returns the draft while the payment card is edited.
func (e *OrderEditor) PaymentInfoDraft() (*PaymentInfoDraft, bool) {
	return draftAs[PaymentInfoDraft](e)
}

// RecipientInfoDraft returns the draft while the recipient card is edited.
func (e *OrderEditor) RecipientInfoDraft() (*RecipientInfoDraft, bool) {
	return draftAs[RecipientInfoDraft](e)
}

// OrderDetailDraft returns the draft while a line item is edited.
func (e *OrderEditor) OrderDetailDraft() (*OrderDetailDraft, bool) {
	return draftAs[OrderDetailDraft](e)
}

func draftAs[T any](e *OrderEditor) (*T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Editing {
		return nil, false
	}
	d, ok := e.draft.(*T)
	return d, ok
}

// Save sends the draft as one partial update. On failure the editor stays in
// Editing with the draft intact. On success it returns to Viewing and the
// refetch hook replaces the committed order.
func (e *OrderEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case Saving:
		e.mu.Unlock()
		return ErrSaveInProgress
	case Viewing:
		e.mu.Unlock()
		return ErrNotEditing
	}

	send, err := e.payload()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	target := e.target
	orderID := e.order.ID
	e.state = Saving
	e.mu.Unlock()

	err = send(ctx)

	e.mu.Lock()
	if err != nil {
		e.state = Editing
		e.mu.Unlock()
		e.logger.Warn("Save failed", zap.String("target", target.Key()), zap.Error(err))
		return fmt.Errorf("failed to save %s: %w", target.Key(), err)
	}
	e.reset()
	e.mu.Unlock()

	e.logger.Debug("Saved", zap.String("target", target.Key()))

	if e.refetch == nil {
		return nil
	}
	order, err := e.refetch(ctx, orderID)
	if err != nil {
		return fmt.Errorf("saved %s but failed to reload order: %w", target.Key(), err)
	}
	e.Refresh(order)
	return nil
}

// payload builds the call for the current draft. Callers hold mu.
func (e *OrderEditor) payload() (func(context.Context) error, error) {
	order := e.order
	switch d := e.draft.(type) {
	case *CustomerInfoDraft:
		req, err := d.ToRequest()
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			_, err := e.saver.UpdateCustomer(ctx, order.CustomerID, req)
			return err
		}, nil
	case *OrderInfoDraft:
		req, err := d.ToRequest(e.loc)
		if err != nil {
			return nil, err
		}
		return e.updateOrder(order.ID, req), nil
	case *PaymentInfoDraft:
		req, err := d.ToRequest()
		if err != nil {
			return nil, err
		}
		return e.updateOrder(order.ID, req), nil
	case *RecipientInfoDraft:
		req, err := d.ToRequest()
		if err != nil {
			return nil, err
		}
		return e.updateOrder(order.ID, req), nil
	case *OrderDetailDraft:
		req, err := d.ToRequest()
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			_, err := e.saver.UpdateOrderDetail(ctx, d.ID, req)
			return err
		}, nil
	}
	return nil, ErrNotEditing
}

func (e *OrderEditor) updateOrder(id uint, req models.UpdateOrderRequest) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := e.saver.UpdateOrder(ctx, id, req)
		return err
	}
}

// Refresh installs a refetched committed order. A draft being edited is kept.
func (e *OrderEditor) Refresh(order *models.Order) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.order = order
}

// Remaining is the committed order's outstanding amount.
func (e *OrderEditor) Remaining() float64 {
	return e.Order().RemainingAmount()
}

// PaymentProgress is the committed order's paid percentage.
func (e *OrderEditor) PaymentProgress() float64 {
	return e.Order().PaymentProgress()
}
