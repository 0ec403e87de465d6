package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ShareDateLayout is how order times are shown to people.
const ShareDateLayout = "2006-01-02 15:04"

// ShareText is the plain-text digest sent to the messaging app. Dates are
// shown in UTC, as they are stored.
func ShareText(o Order) string {
	var b strings.Builder
	b.WriteString(o.Label())
	if !o.Date.IsZero() {
		fmt.Fprintf(&b, " (%s)", o.Date.UTC().Format(ShareDateLayout))
	}
	for _, it := range o.Items {
		fmt.Fprintf(&b, "\n%s: %d", it.Drink, it.Quantity)
	}
	return b.String()
}

// ShareLink builds a messaging deep link carrying the order digest.
func ShareLink(baseURL string, o Order) string {
	return strings.TrimRight(baseURL, "/") + "/send?text=" + percentEncode(ShareText(o))
}

// percentEncode escapes s as a query component with spaces as %20.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
