package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// WriteText prints the quote sheet as aligned plain text.
func WriteText(w io.Writer, doc Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, doc.title())
	for _, section := range []struct {
		title string
		rows  []row
	}{
		{"Configuration", doc.configurationRows()},
		{"Dimensions", doc.envelopeRows()},
		{"Price", doc.priceRows()},
	} {
		fmt.Fprintf(tw, "\n%s\n", section.title)
		for _, r := range section.rows {
			fmt.Fprintf(tw, "  %s\t%s\n", r.label, r.value)
		}
	}
	return tw.Flush()
}

// WritePartsText prints the part list of one leaf with the quantity for
// the whole order.
func WritePartsText(w io.Writer, doc Document) error {
	if err := doc.check(); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PART\tKIND\tPROFILE\tSIZE\tQTY")
	for _, p := range doc.Assembly.Parts {
		profile := string(p.Profile())
		if p.IsGlass {
			profile = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.Label, p.Kind, profile, partSize(p), doc.leaves())
	}
	return tw.Flush()
}

// WriteCutPlanText prints one line per stock bar and lists unplaced cuts.
func WriteCutPlanText(w io.Writer, plan model.CutPlan) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BAR\tPROFILE\tSTOCK\tCUTS\tREST\tYIELD")
	for i, b := range plan.Bars {
		cuts := make([]string, len(b.Cuts))
		for j, c := range b.Cuts {
			cuts[j] = fmt.Sprintf("%.0f", c.Length)
		}
		fmt.Fprintf(tw, "%d\t%s\t%.0f\t%s\t%.0f\t%.1f%%\n",
			i+1, b.Stock.Profile, b.Stock.Length, strings.Join(cuts, ", "), b.Remaining(), b.Efficiency())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nOverall yield: %.1f%%\n", plan.TotalEfficiency())
	for _, c := range plan.Unplaced {
		fmt.Fprintf(w, "Unplaced: %s (leaf %d) %.0f mm %s\n", c.Label, c.Leaf, c.Length, c.Profile)
	}
	return nil
}
