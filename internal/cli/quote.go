package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/DoorCraft/internal/archive"
	"github.com/piwi3910/DoorCraft/internal/configurator"
	"github.com/piwi3910/DoorCraft/internal/engine"
	"github.com/piwi3910/DoorCraft/internal/export"
)

// errInvalid makes validate exit non-zero after printing its report.
var errInvalid = errors.New("configuration is invalid")

// quoteOutput is the JSON form of a quote.
type quoteOutput struct {
	configurator.DerivedState
	Reference string `json:"reference,omitempty"`
}

func quoteCmd(a *app) *cobra.Command {
	var (
		flags  configFlags
		asJSON bool
		save   bool
	)

	c := &cobra.Command{
		Use:   "quote",
		Short: "Price a door configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := flags.state(cmd, a)
			if err != nil {
				return err
			}

			var reference string
			if save {
				repo, closeDB, err := a.openArchive(cmd.Context())
				if err != nil {
					return err
				}
				defer func() { _ = closeDB() }()

				q := archive.NewQuote(state.Configuration, state.Price)
				if err := repo.Save(cmd.Context(), q); err != nil {
					return err
				}
				reference = q.Reference
				a.log.Info("quote saved", "reference", q.Reference, "total", q.Price.TotalPrice)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(quoteOutput{DerivedState: state, Reference: reference})
			}
			return export.WriteText(out, a.document(state, reference))
		},
	}

	flags.register(c)
	c.Flags().BoolVar(&asJSON, "json", false, "print the full derived state as JSON")
	c.Flags().BoolVar(&save, "save", false, "store the quote in the archive")
	return c
}

func validateCmd(a *app) *cobra.Command {
	var flags configFlags

	c := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration without correcting it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.requested(cmd, a)
			if err != nil {
				return err
			}
			result := engine.ValidateConfiguration(cfg)

			out := cmd.OutOrStdout()
			for _, e := range result.Errors {
				fmt.Fprintf(out, "error: %s\n", e)
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			if !result.Valid {
				return errInvalid
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}

	flags.register(c)
	return c
}

func partsCmd(a *app) *cobra.Command {
	var flags configFlags

	c := &cobra.Command{
		Use:   "parts",
		Short: "List the parts of one leaf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := flags.state(cmd, a)
			if err != nil {
				return err
			}
			cfg := state.Configuration
			state.Assembly, err = engine.BuildAssembly(cfg.Mechanism, cfg.GridLayout,
				state.Envelope.DoorLeafWidth, cfg.OpeningHeight)
			if err != nil {
				return err
			}
			return export.WritePartsText(cmd.OutOrStdout(), a.document(state, ""))
		},
	}

	flags.register(c)
	return c
}

func compareCmd(a *app) *cobra.Command {
	var flags configFlags

	c := &cobra.Command{
		Use:   "compare",
		Short: "Price the current size across every mechanism and grid layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := flags.state(cmd, a)
			if err != nil {
				return err
			}
			results := engine.CompareScenarios(engine.NewPricer(a.prices),
				engine.BuildDefaultScenarios(state.Configuration))
			return writeComparison(cmd.OutOrStdout(), results)
		},
	}

	flags.register(c)
	return c
}

func writeComparison(w io.Writer, results []engine.ComparisonResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tLEAF\tPARTS\tTOTAL\tDIFF")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%.0f mm\t%d\t%s %d\t%+d\n",
			r.Scenario.Name, r.Envelope.DoorLeafWidth, r.PartCount,
			r.Price.Currency, r.Price.TotalPrice, r.Difference)
	}
	return tw.Flush()
}
