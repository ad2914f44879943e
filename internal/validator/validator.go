package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/akozlov/order-relay/internal/models"
)

// Kind classifies a validated payload exactly once, right after validation.
type Kind int

const (
	// KindOrder is a real order notification that goes through mapping and forwarding.
	KindOrder Kind = iota
	// KindProbe is a connectivity test marked with test == "test"; it is
	// acknowledged without any further processing.
	KindProbe
)

// probeMarker is the literal value the payment form sends in the "test" field
// when it checks webhook connectivity.
const probeMarker = "test"

// Result is the outcome of a successful validation.
type Result struct {
	Kind    Kind
	Payload models.OrderPayload
}

// Validate decodes a raw order notification permissively (all fields optional,
// unknown fields ignored) and checks typed range rules. On any violation it
// returns every field-level message, not just the first.
func Validate(raw []byte) (Result, []string) {
	var payload models.OrderPayload

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&payload); err != nil {
		return Result{}, []string{decodeMessage(err)}
	}

	if details := check(payload); len(details) > 0 {
		return Result{}, details
	}

	kind := KindOrder
	if payload.Test == probeMarker {
		kind = KindProbe
	}

	return Result{Kind: kind, Payload: payload}, nil
}

func check(p models.OrderPayload) []string {
	var details []string

	// EmailFormat checks shape only; the Email rule resolves the domain over
	// DNS, which would make validation network-dependent.
	if err := validation.Validate(p.Email, is.EmailFormat); err != nil {
		details = append(details, fmt.Sprintf("ma_email: %v", err))
	}

	if p.Payment != nil {
		details = append(details, checkPayment(*p.Payment)...)
	}

	sort.Strings(details)
	return details
}

func checkPayment(pay models.Payment) []string {
	var details []string

	// payment.amount is passed through as sent, negative included; refunds
	// arrive as negative totals.
	if pay.Products != nil && len(pay.Products) == 0 {
		details = append(details, "payment.products: cannot be empty")
	}

	for i, prod := range pay.Products {
		details = append(details, checkProduct(fmt.Sprintf("payment.products.%d", i), prod)...)
	}

	return details
}

func checkProduct(path string, prod models.Product) []string {
	var details []string

	// Min rules skip zero values, so quantity >= 1 needs an explicit check.
	if prod.Quantity < 1 {
		details = append(details, fmt.Sprintf("%s.quantity: must be no less than 1", path))
	}
	if err := validation.Validate(prod.Price, validation.Min(0.0)); err != nil {
		details = append(details, fmt.Sprintf("%s.price: %v", path, err))
	}
	if err := validation.Validate(prod.Amount, validation.Min(0.0)); err != nil {
		details = append(details, fmt.Sprintf("%s.amount: %v", path, err))
	}

	return details
}

func decodeMessage(err error) string {
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return fmt.Sprintf("%s: must be of type %s", field, typeErr.Type)
	}
	return fmt.Sprintf("body: invalid JSON: %v", err)
}
