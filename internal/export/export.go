// Package export renders snapshot data as plain text for the file/print
// collaborators: a CSV customer dump, a monospace sales report and a receipt.
// Pure string formatting downstream of the reporting core.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/booklyhq/bookly/internal/models"
)

const dateLayout = "2006-01-02"

// CustomersCSV renders the cached customer projection as comma-separated
// rows. Missing phone numbers and last-order dates come out as N/A.
func CustomersCSV(customers []models.Customer) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Name", "Phone", "Tier", "Total Spent", "Orders", "Last Order"}); err != nil {
		return "", err
	}
	for _, c := range customers {
		phone := c.Phone
		if phone == "" {
			phone = "N/A"
		}
		last := "N/A"
		if c.LastOrderDate != nil {
			last = c.LastOrderDate.Format(dateLayout)
		}
		row := []string{
			c.Name,
			phone,
			string(c.Tier),
			strconv.FormatFloat(c.TotalSpent, 'f', -1, 64),
			strconv.Itoa(c.OrderCount),
			last,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// SalesReport renders a human-readable sales summary. filter names the
// channel restriction applied by the caller ("All" when unfiltered); the
// orders passed in are already filtered.
func SalesReport(profile models.BusinessProfile, orders []models.Order, filter string, now time.Time) string {
	var total float64
	for _, o := range orders {
		total += o.Total
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s SALES REPORT\n", strings.ToUpper(profile.Name))
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Date: %s\n", now.Format(dateLayout))
	fmt.Fprintf(&b, "Business: %s\n", profile.Name)
	fmt.Fprintf(&b, "Filter: %s\n\n", filter)
	fmt.Fprintf(&b, "Total Revenue: %s%s\n", profile.Currency, money(total))
	fmt.Fprintf(&b, "Total Orders: %d\n\n", len(orders))
	b.WriteString("ORDERS:\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "[%s] %s - %s%s (%s)\n", o.Date.Format(dateLayout), o.CustomerName, profile.Currency, money(o.Total), o.Source)
	}
	return b.String()
}

// Receipt renders a single order as printable text, footer note included.
func Receipt(profile models.BusinessProfile, order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "RECEIPT - %s\n", profile.Name)
	b.WriteString("------------------------------\n")
	fmt.Fprintf(&b, "Order ID: %s\n", order.ID)
	fmt.Fprintf(&b, "Date: %s\n", order.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Customer: %s\n\n", order.CustomerName)
	if len(order.Items) > 0 {
		b.WriteString("ITEMS:\n")
		for _, it := range order.Items {
			fmt.Fprintf(&b, "%dx %s - %s%s\n", it.Quantity, it.Name, profile.Currency, money(it.Price))
		}
		b.WriteString("\n")
	}
	b.WriteString("------------------------------\n")
	fmt.Fprintf(&b, "TOTAL: %s%s\n", profile.Currency, money(order.Total))
	fmt.Fprintf(&b, "Payment: %s\n", order.PaymentMethod)
	if profile.FooterNote != "" {
		fmt.Fprintf(&b, "\n%s\n", profile.FooterNote)
	}
	return b.String()
}

// money formats an amount with thousands separators, dropping the fraction
// for whole values (35000 -> "35,000", 1250.5 -> "1,250.50").
func money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if strings.HasSuffix(s, ".00") {
		s = strings.TrimSuffix(s, ".00")
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var out strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	res := out.String() + frac
	if neg {
		res = "-" + res
	}
	return res
}
