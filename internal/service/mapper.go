package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/akozlov/order-relay/internal/models"
)

// BuildTransaction reshapes a validated order payload into the flat record
// the accounting API accepts. Formatting is purely textual: quantity, price
// and amount are passed through as sent, with no arithmetic cross-check.
func BuildTransaction(payload models.OrderPayload, now time.Time) models.TransactionRecord {
	record := models.TransactionRecord{
		Date:  formatDate(now),
		Email: payload.Email,
	}

	if payload.Payment != nil {
		record.Total = payload.Payment.Amount
		record.ID = payload.Payment.OrderID
		record.Items = formatItems(payload.Payment.Products)
	}

	return record
}

// formatDate renders the local date as day.month.year without zero padding,
// e.g. "3.7.2026".
func formatDate(t time.Time) string {
	return strconv.Itoa(t.Day()) + "." + strconv.Itoa(int(t.Month())) + "." + strconv.Itoa(t.Year())
}

// formatItems concatenates one line per product, in order, with no separator:
// "<name><options> – <quantity>x<price>=<amount>;"
func formatItems(products []models.Product) string {
	var b strings.Builder

	for _, p := range products {
		b.WriteString(p.Name)
		b.WriteString(formatOptions(p.Options))
		b.WriteString(" – ")
		b.WriteString(formatNumber(p.Quantity))
		b.WriteString("x")
		b.WriteString(formatNumber(p.Price))
		b.WriteString("=")
		b.WriteString(formatNumber(p.Amount))
		b.WriteString(";")
	}

	return b.String()
}

// formatOptions renders " (Color: Red, Size: XL)" when options exist, else "".
func formatOptions(options []models.Option) string {
	if len(options) == 0 {
		return ""
	}

	parts := make([]string, 0, len(options))
	for _, o := range options {
		parts = append(parts, o.Option+": "+o.Variant)
	}

	return " (" + strings.Join(parts, ", ") + ")"
}

// formatNumber renders a float in minimal form, e.g. 2 -> "2", 12.5 -> "12.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
