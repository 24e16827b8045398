package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/DoorCraft/internal/engine"
	"github.com/piwi3910/DoorCraft/internal/export"
	"github.com/piwi3910/DoorCraft/internal/importer"
	"github.com/piwi3910/DoorCraft/internal/model"
	"github.com/piwi3910/DoorCraft/internal/project"
)

// exporters maps --format values to writers.
var exporters = map[string]func(path string, doc export.Document) error{
	"pdf":    export.ExportPDF,
	"labels": export.ExportLabels,
	"xlsx":   export.ExportExcel,
	"dxf":    export.ExportDXF,
}

func exportCmd(a *app) *cobra.Command {
	var (
		flags    configFlags
		format   string
		out      string
		withPlan bool
	)

	c := &cobra.Command{
		Use:   "export",
		Short: "Write a quote sheet, part labels, workbook or DXF elevation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			write, ok := exporters[format]
			if !ok {
				return fmt.Errorf("unknown format %q (expected pdf, labels, xlsx or dxf)", format)
			}
			if out == "" {
				ext := format
				if format == "labels" {
					ext = "pdf"
				}
				out = "door-" + format + "." + ext
			}

			state, err := flags.state(cmd, a)
			if err != nil {
				return err
			}
			doc := a.document(state, "")
			if withPlan {
				inv, err := project.LoadInventory(project.DefaultInventoryPath(), a.cfg.BarLength)
				if err != nil {
					return fmt.Errorf("load inventory: %w", err)
				}
				plan := engine.NewCutPlanner(inv, a.cfg.KerfWidth).Plan(state.Assembly, state.Configuration.LeafCount.Leaves())
				doc.CutPlan = &plan
			}

			if err := write(out, doc); err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}
			a.log.Info("exported", "format", format, "path", out)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	flags.register(c)
	c.Flags().StringVar(&format, "format", "pdf", "output format: pdf, labels, xlsx, dxf")
	c.Flags().StringVarP(&out, "out", "o", "", "output file (default door-<format>.<ext>)")
	c.Flags().BoolVar(&withPlan, "cut-plan", false, "include the steel cutting plan (pdf and xlsx)")
	return c
}

func cutplanCmd(a *app) *cobra.Command {
	var (
		flags        configFlags
		bar          float64
		kerf         float64
		keepRemnants bool
	)

	c := &cobra.Command{
		Use:   "cutplan",
		Short: "Plan how the steel parts are sawn from stock bars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := flags.state(cmd, a)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("kerf") {
				kerf = a.cfg.KerfWidth
			}

			// An explicit bar length plans against fresh bars only.
			var inv model.Inventory
			if cmd.Flags().Changed("bar") {
				inv = model.DefaultInventory(bar)
			} else if inv, err = project.LoadInventory(project.DefaultInventoryPath(), a.cfg.BarLength); err != nil {
				return fmt.Errorf("load inventory: %w", err)
			}

			plan := engine.NewCutPlanner(inv, kerf).Plan(state.Assembly, state.Configuration.LeafCount.Leaves())
			if err := export.WriteCutPlanText(cmd.OutOrStdout(), plan); err != nil {
				return err
			}

			if keepRemnants {
				remnants := model.DetectRemnants(plan)
				inv = project.AddRemnants(inv, remnants)
				if err := project.SaveInventory(project.DefaultInventoryPath(), inv); err != nil {
					return fmt.Errorf("save inventory: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Kept %d remnants (%.0f mm)\n",
					len(remnants), model.TotalRemnantLength(remnants))
			}
			return nil
		},
	}

	flags.register(c)
	c.Flags().Float64Var(&bar, "bar", 6000, "stock bar length in mm (ignores the remnant rack)")
	c.Flags().Float64Var(&kerf, "kerf", 0, "saw kerf in mm (default from config)")
	c.Flags().BoolVar(&keepRemnants, "keep-remnants", false, "put reusable bar ends back on the rack")
	return c
}

func batchCmd(a *app) *cobra.Command {
	var in, out string

	c := &cobra.Command{
		Use:   "batch",
		Short: "Quote every configuration in a CSV or Excel file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				out = strings.TrimSuffix(in, filepath.Ext(in)) + "-quotes.xlsx"
			}

			result := importer.Import(in, a.defaults)
			errOut := cmd.ErrOrStderr()
			for _, w := range result.Warnings {
				fmt.Fprintf(errOut, "warning: %s\n", w)
			}
			for _, e := range result.Errors {
				fmt.Fprintf(errOut, "error: %s\n", e)
			}
			if len(result.Rows) == 0 {
				return fmt.Errorf("no configurations read from %s", in)
			}

			lines := make([]export.BatchLine, 0, len(result.Rows))
			for _, row := range result.Rows {
				state := a.newStore(row.Configuration).State()
				lines = append(lines, export.BatchLine{
					Name:          row.Name,
					Configuration: state.Configuration,
					Envelope:      state.Envelope,
					Price:         state.Price,
					Warnings:      engine.ValidateConfiguration(state.Configuration).Warnings,
				})
			}

			if err := export.ExportBatchExcel(out, lines); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.log.Info("batch quoted", "in", in, "out", out, "rows", len(lines), "errors", len(result.Errors))
			fmt.Fprintf(cmd.OutOrStdout(), "Quoted %d configurations into %s\n", len(lines), out)
			return nil
		},
	}

	c.Flags().StringVarP(&in, "in", "i", "", "CSV or .xlsx file with one configuration per row")
	c.Flags().StringVarP(&out, "out", "o", "", "output workbook (default <in>-quotes.xlsx)")
	_ = c.MarkFlagRequired("in")
	return c
}
