package proofing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Code identifies a selection problem independently of the language.
type Code string

const (
	CodeNoItems              Code = "no_items"
	CodeInvalidSheetQuantity Code = "invalid_sheet_quantity"
	CodeQuantityExceeded     Code = "quantity_exceeded"
	CodeMaterialMismatch     Code = "material_mismatch"
	CodeSubmitting           Code = "submitting"
	CodeSubmitFailed         Code = "submit_failed"
)

// Error is a user-facing problem with a localized message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Supported languages; the first is the default.
var supported = []language.Tag{language.Vietnamese, language.English}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[Code]string{
	language.Vietnamese: {
		CodeNoItems:              "Vui lòng chọn ít nhất một thiết kế với số lượng lớn hơn 0",
		CodeInvalidSheetQuantity: "Số lượng tờ in phải là số nguyên dương không vượt quá %d",
		CodeQuantityExceeded:     "Số lượng của %s (%d) vượt quá số lượng còn lại (%d)",
		CodeMaterialMismatch:     "Tất cả thiết kế trong bình bài phải cùng một loại vật liệu",
		CodeSubmitting:           "Đang gửi yêu cầu, vui lòng chờ",
		CodeSubmitFailed:         "Không thể thêm thiết kế vào bình bài: %v",
	},
	language.English: {
		CodeNoItems:              "Select at least one design with a quantity above 0",
		CodeInvalidSheetQuantity: "Sheet quantity must be a positive whole number no greater than %d",
		CodeQuantityExceeded:     "Quantity for %s (%d) exceeds the available quantity (%d)",
		CodeMaterialMismatch:     "All designs in a proofing order must use the same material type",
		CodeSubmitting:           "A request is already being sent, please wait",
		CodeSubmitFailed:         "Could not add designs to the proofing order: %v",
	},
}

func init() {
	for tag, msgs := range messages {
		for code, msg := range msgs {
			if err := message.SetString(tag, string(code), msg); err != nil {
				panic(err)
			}
		}
	}
}

func printer(lang language.Tag) *message.Printer {
	_, index, _ := matcher.Match(lang)
	return message.NewPrinter(supported[index])
}

func newError(lang language.Tag, code Code, args ...any) *Error {
	return &Error{Code: code, Message: printer(lang).Sprintf(string(code), args...)}
}
