package invoice

import (
	"strings"
	"testing"
)

func TestGenerateLineItems_Full(t *testing.T) {
	items := GenerateLineItems(Params{
		BasePrice:            80,
		BasePriceDescription: "Zürich Airport → Zürich City",
		AddOns:               []AddOnLine{{Name: "VIP Service", Price: 100}},
		DelaySurcharge:       50,
		DiscountAmount:       30,
		DiscountReason:       "Returning customer",
	})

	if len(items) != 5 {
		t.Fatalf("got %d items; want 5", len(items))
	}

	wantTypes := []ItemType{ItemBase, ItemAddOn, ItemFee, ItemDiscount, ItemTotal}
	for i, want := range wantTypes {
		if items[i].Type != want {
			t.Errorf("items[%d].Type = %s; want %s", i, items[i].Type, want)
		}
	}

	if items[3].Amount != -30 {
		t.Errorf("discount amount = %.2f; want -30", items[3].Amount)
	}

	// Total is the running sum of the rows above it, discount included.
	if items[4].Amount != 80+100+50-30 {
		t.Errorf("total = %.2f; want 200", items[4].Amount)
	}
}

func TestGenerateLineItems_BaseOnly(t *testing.T) {
	items := GenerateLineItems(Params{
		BasePrice:            990,
		BasePriceDescription: "Distance: 220.0 km × 4.50 CHF/km",
	})
	if len(items) != 2 {
		t.Fatalf("got %d items; want base + total", len(items))
	}
	if items[1].Type != ItemTotal || items[1].Amount != 990 {
		t.Errorf("total = %+v; want 990", items[1])
	}
}

func TestGenerateLineItems_ZeroSurchargeOmitted(t *testing.T) {
	items := GenerateLineItems(Params{
		BasePrice:            100,
		BasePriceDescription: "Transfer",
		DelaySurcharge:       0,
	})
	for _, item := range items {
		if item.Type == ItemFee {
			t.Error("zero delay surcharge must not produce a fee line")
		}
	}
}

func TestFormatText(t *testing.T) {
	items := GenerateLineItems(Params{
		BasePrice:            80,
		BasePriceDescription: "Airport transfer",
		DiscountAmount:       10,
	})
	text := FormatText(items)

	if !strings.HasPrefix(text, "=== INVOICE ===") {
		t.Errorf("missing header:\n%s", text)
	}
	if !strings.Contains(text, "-10.00 CHF") {
		t.Errorf("negative amount lost its sign:\n%s", text)
	}
	if !strings.Contains(text, strings.Repeat("─", 40)) {
		t.Errorf("missing separator before total:\n%s", text)
	}

	// Amounts are right-aligned in a 40-column layout.
	for _, line := range strings.Split(text, "\n") {
		if strings.HasSuffix(line, "CHF") && len(line) != 40 {
			t.Errorf("line %q has width %d; want 40", line, len(line))
		}
	}
}
