package service

import (
	"testing"
	"time"

	"github.com/akozlov/order-relay/internal/models"
)

func TestBuildTransaction(t *testing.T) {
	now := time.Date(2026, time.July, 3, 15, 4, 5, 0, time.Local)

	tests := []struct {
		name      string
		payload   models.OrderPayload
		wantItems string
		wantTotal float64
		wantID    string
		wantEmail string
	}{
		{
			name: "two products with options preserved in order",
			payload: models.OrderPayload{
				Email: "buyer@example.com",
				Payment: &models.Payment{
					Amount:  11,
					OrderID: "A-100",
					Products: []models.Product{
						{Name: "A", Quantity: 2, Price: 3, Amount: 6},
						{Name: "B", Quantity: 1, Price: 5, Amount: 5, Options: []models.Option{
							{Option: "Color", Variant: "Red"},
						}},
					},
				},
			},
			wantItems: "A – 2x3=6;B (Color: Red) – 1x5=5;",
			wantTotal: 11,
			wantID:    "A-100",
			wantEmail: "buyer@example.com",
		},
		{
			name: "multiple options joined with commas",
			payload: models.OrderPayload{
				Payment: &models.Payment{
					Amount:  25.5,
					OrderID: "A-101",
					Products: []models.Product{
						{Name: "Shirt", Quantity: 1, Price: 25.5, Amount: 25.5, Options: []models.Option{
							{Option: "Color", Variant: "Blue"},
							{Option: "Size", Variant: "XL"},
						}},
					},
				},
			},
			wantItems: "Shirt (Color: Blue, Size: XL) – 1x25.5=25.5;",
			wantTotal: 25.5,
			wantID:    "A-101",
		},
		{
			name: "amount mismatch passes through unchecked",
			payload: models.OrderPayload{
				Payment: &models.Payment{
					Amount:  999,
					OrderID: "A-102",
					Products: []models.Product{
						{Name: "Mug", Quantity: 2, Price: 10, Amount: 7},
					},
				},
			},
			wantItems: "Mug – 2x10=7;",
			wantTotal: 999,
			wantID:    "A-102",
		},
		{
			name:      "no payment yields empty record fields",
			payload:   models.OrderPayload{Email: "a@b.com"},
			wantEmail: "a@b.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := BuildTransaction(tt.payload, now)

			if record.Items != tt.wantItems {
				t.Errorf("items = %q, want %q", record.Items, tt.wantItems)
			}
			if record.Total != tt.wantTotal {
				t.Errorf("total = %v, want %v", record.Total, tt.wantTotal)
			}
			if record.ID != tt.wantID {
				t.Errorf("id = %q, want %q", record.ID, tt.wantID)
			}
			if record.Email != tt.wantEmail {
				t.Errorf("email = %q, want %q", record.Email, tt.wantEmail)
			}
			if record.Date != "3.7.2026" {
				t.Errorf("date = %q, want %q", record.Date, "3.7.2026")
			}
		})
	}
}

func TestBuildTransactionIsDeterministic(t *testing.T) {
	now := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.Local)
	payload := models.OrderPayload{
		Payment: &models.Payment{
			Amount:  6,
			OrderID: "A-200",
			Products: []models.Product{
				{Name: "A", Quantity: 2, Price: 3, Amount: 6},
			},
		},
	}

	first := BuildTransaction(payload, now)
	second := BuildTransaction(payload, now)

	if first != second {
		t.Errorf("records differ: %+v vs %+v", first, second)
	}
	if first.Date != "15.1.2026" {
		t.Errorf("date = %q, want %q", first.Date, "15.1.2026")
	}
}
