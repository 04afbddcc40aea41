package cli

import (
	"testing"

	"github.com/andy/agrione/internal/domain"
	"github.com/spf13/cobra"
)

func draftCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	addDraftFlags(cmd)
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set --%s: %v", name, err)
		}
	}
	return cmd
}

func TestDraftFromFlagsRegionPrefix(t *testing.T) {
	cmd := draftCmd(t, map[string]string{
		"customer": "Ahmed",
		"phone":    "0100",
		"region":   "Giza",
		"address":  "Kerdasa",
		"item":     "Wheat:100:2",
	})

	draft, err := draftFromFlags(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.CustomerAddress != "Giza - Kerdasa" {
		t.Fatalf("expected region prefix, got %q", draft.CustomerAddress)
	}
}

func TestDraftFromFlagsRegionAlreadyPresent(t *testing.T) {
	// The containment check ignores case, so "giza" in the address
	// suppresses the "Giza" prefix.
	cmd := draftCmd(t, map[string]string{
		"customer": "Ahmed",
		"phone":    "0100",
		"region":   "Giza",
		"address":  "giza - Kerdasa",
		"item":     "Wheat:100:2",
	})

	draft, err := draftFromFlags(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.CustomerAddress != "giza - Kerdasa" {
		t.Fatalf("expected address unchanged, got %q", draft.CustomerAddress)
	}
}

func TestParseItemSpec(t *testing.T) {
	item, err := parseItemSpec("Wheat:100:2.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Name != "Wheat" || item.Price != 100 || item.Quantity != 2.5 {
		t.Fatalf("unexpected item: %+v", item)
	}

	// Quantity defaults to 1
	item, err = parseItemSpec("Corn:50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %v", item.Quantity)
	}

	if _, err := parseItemSpec("Corn"); err == nil {
		t.Fatalf("expected error for missing price")
	}
	if _, err := parseItemSpec("Corn:cheap"); err == nil {
		t.Fatalf("expected error for non-numeric price")
	}
}

func TestShareSummaryPlainASCII(t *testing.T) {
	got := shareSummary(domain.Invoice{ID: "INV-AB12CD34", CustomerName: "Ahmed", Total: 1500})
	want := "Invoice INV-AB12CD34 | Ahmed | 1500.00"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for _, r := range got {
		if r > 127 {
			t.Fatalf("expected ASCII-only output, found %q", r)
		}
	}
}
