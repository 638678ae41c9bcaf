package export

import (
	"strings"

	"outgo/internal/core"
)

// FormatCurrency renders an amount as $1,234.56 (en-US, USD).
func FormatCurrency(m core.Money) string {
	s := m.String()
	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	return "$" + intPart + fracPart
}

// FormatDate renders a date in the en-US medium style (Mar 5, 2024).
func FormatDate(d core.Date) string {
	return d.Format("Jan 2, 2006")
}
