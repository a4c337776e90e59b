package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultCodeFormat is used when a design type has no format of its own.
const DefaultCodeFormat = "{customerCode}-{designType}-{number:3}"

var (
	designCodeToken = regexp.MustCompile(`\{(customerCode|designType|number|date)(?::([^}]*))?\}`)
	datePattern     = strings.NewReplacer("YYYY", "2006", "YY", "06", "MM", "01", "DD", "02")
)

// GenerateDesignCode fills a design code template.
//
// Supported placeholders:
//
//	{customerCode}  the customer's code
//	{designType}    the design type's code
//	{number}        the design number; {number:N} zero-pads it to N digits
//	{date:FMT}      the date, FMT built from YYYY, YY, MM and DD (default YYMMDD)
//
// Unknown placeholders are left as they are.
func GenerateDesignCode(format, customerCode, designTypeCode string, number int, date time.Time) string {
	if strings.TrimSpace(format) == "" {
		format = DefaultCodeFormat
	}

	return designCodeToken.ReplaceAllStringFunc(format, func(token string) string {
		m := designCodeToken.FindStringSubmatch(token)
		switch m[1] {
		case "customerCode":
			return customerCode
		case "designType":
			return designTypeCode
		case "number":
			width, err := strconv.Atoi(m[2])
			if err != nil || width <= 0 {
				return strconv.Itoa(number)
			}
			return fmt.Sprintf("%0*d", width, number)
		case "date":
			pattern := m[2]
			if pattern == "" {
				pattern = "YYMMDD"
			}
			return date.Format(datePattern.Replace(pattern))
		}
		return token
	})
}
