package editor

import "fmt"

type targetKind uint8

const (
	kindNone targetKind = iota
	kindCustomerInfo
	kindOrderInfo
	kindPaymentInfo
	kindRecipientInfo
	kindOrderDetail
)

// Target is an editable card of the order page, or one of its line items.
type Target struct {
	kind   targetKind
	itemID uint
}

var (
	CustomerInfo  = Target{kind: kindCustomerInfo}
	OrderInfo     = Target{kind: kindOrderInfo}
	PaymentInfo   = Target{kind: kindPaymentInfo}
	RecipientInfo = Target{kind: kindRecipientInfo}
)

// OrderDetailItem targets the line item with the given id.
func OrderDetailItem(id uint) Target {
	return Target{kind: kindOrderDetail, itemID: id}
}

// IsZero reports whether t targets nothing.
func (t Target) IsZero() bool { return t.kind == kindNone }

// ItemID returns the line item id, or 0 for cards.
func (t Target) ItemID() uint { return t.itemID }

// Key is a stable string form, e.g. "paymentInfo" or "orderDetail:12".
func (t Target) Key() string {
	switch t.kind {
	case kindCustomerInfo:
		return "customerInfo"
	case kindOrderInfo:
		return "orderInfo"
	case kindPaymentInfo:
		return "paymentInfo"
	case kindRecipientInfo:
		return "recipientInfo"
	case kindOrderDetail:
		return fmt.Sprintf("orderDetail:%d", t.itemID)
	}
	return ""
}

func (t Target) String() string { return t.Key() }

// State is the edit state of the page.
type State uint8

const (
	Viewing State = iota
	Editing
	Saving
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "viewing"
	}
}
