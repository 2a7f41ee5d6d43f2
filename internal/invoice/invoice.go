// Package invoice assembles and renders booking receipts.
package invoice

import (
	"fmt"
	"strings"
)

// ItemType tags an invoice line.
type ItemType string

const (
	ItemBase     ItemType = "base"
	ItemAddOn    ItemType = "addon"
	ItemFee      ItemType = "fee"
	ItemDiscount ItemType = "discount"
	ItemTotal    ItemType = "total"
)

// LineItem is one row of an invoice. Discount amounts are negative.
type LineItem struct {
	Description string   `json:"description"`
	Quantity    int      `json:"quantity,omitempty"`
	UnitPrice   float64  `json:"unit_price,omitempty"`
	Amount      float64  `json:"amount"`
	Type        ItemType `json:"type"`
}

// Params carries everything that goes onto an invoice.
type Params struct {
	BasePrice            float64
	BasePriceDescription string
	AddOns               []AddOnLine
	DelaySurcharge       float64
	DiscountAmount       float64
	DiscountReason       string
}

// AddOnLine is one booked add-on.
type AddOnLine struct {
	Name  string
	Price float64
}

// GenerateLineItems builds the ordered invoice rows. The trailing total line
// is the running sum of every preceding row, including negative discounts.
func GenerateLineItems(p Params) []LineItem {
	items := []LineItem{
		{Description: p.BasePriceDescription, Amount: p.BasePrice, Type: ItemBase},
	}

	for _, addon := range p.AddOns {
		items = append(items, LineItem{
			Description: addon.Name,
			Quantity:    1,
			UnitPrice:   addon.Price,
			Amount:      addon.Price,
			Type:        ItemAddOn,
		})
	}

	if p.DelaySurcharge > 0 {
		items = append(items, LineItem{
			Description: "Flight Delay Surcharge",
			Amount:      p.DelaySurcharge,
			Type:        ItemFee,
		})
	}

	if p.DiscountAmount > 0 {
		desc := p.DiscountReason
		if desc == "" {
			desc = "Discount"
		}
		items = append(items, LineItem{
			Description: desc,
			Amount:      -p.DiscountAmount,
			Type:        ItemDiscount,
		})
	}

	var total float64
	for _, item := range items {
		total += item.Amount
	}
	items = append(items, LineItem{Description: "Total", Amount: total, Type: ItemTotal})

	return items
}

const lineWidth = 40

// FormatText renders the invoice as fixed-width text, amounts right-aligned
// with sign preserved for negative amounts.
func FormatText(items []LineItem) string {
	var b strings.Builder
	b.WriteString("=== INVOICE ===\n\n")

	for _, item := range items {
		if item.Type == ItemTotal {
			b.WriteString("\n" + strings.Repeat("─", lineWidth) + "\n")
		}

		sign := ""
		if item.Amount < 0 {
			sign = "-"
		}
		amountStr := fmt.Sprintf("%s%.2f CHF", sign, abs(item.Amount))
		padding := lineWidth - len(item.Description) - len(amountStr)
		if padding < 1 {
			padding = 1
		}
		b.WriteString(item.Description + strings.Repeat(" ", padding) + amountStr + "\n")
	}

	return b.String()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
