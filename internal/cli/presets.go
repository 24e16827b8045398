package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/DoorCraft/internal/model"
	"github.com/piwi3910/DoorCraft/internal/project"
)

func presetsCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved configurations",
	}
	c.AddCommand(presetsListCmd(), presetsSaveCmd(a), presetsDeleteCmd())
	return c
}

func presetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := project.LoadPresets(project.DefaultPresetPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(store.Presets) == 0 {
				fmt.Fprintln(out, "No presets saved")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMECHANISM\tLEAVES\tOPENING\tDESCRIPTION")
			for _, p := range store.Presets {
				c := p.Configuration
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.0f x %.0f\t%s\n",
					p.ID, p.Name, c.Mechanism, c.LeafCount, c.OpeningWidth, c.OpeningHeight, p.Description)
			}
			return tw.Flush()
		},
	}
}

func presetsSaveCmd(a *app) *cobra.Command {
	var (
		flags       configFlags
		description string
	)

	c := &cobra.Command{
		Use:   "save NAME",
		Short: "Save the configuration given by the flags as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := flags.state(cmd, a)
			if err != nil {
				return err
			}

			path := project.DefaultPresetPath()
			store, err := project.LoadPresets(path)
			if err != nil {
				return err
			}
			p := store.Upsert(model.NewPreset(args[0], description, state.Configuration))
			if err := project.SavePresets(path, store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	flags.register(c)
	c.Flags().StringVar(&description, "description", "", "free text shown in the preset list")
	return c
}

func presetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a preset by name or ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := project.DefaultPresetPath()
			store, err := project.LoadPresets(path)
			if err != nil {
				return err
			}
			if !store.Remove(args[0]) {
				return fmt.Errorf("preset %q not found", args[0])
			}
			if err := project.SavePresets(path, store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %s\n", args[0])
			return nil
		},
	}
}

func configCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config after file and environment overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a.cfg)
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the built-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configFile()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := project.SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	c.AddCommand(show, initCmd)
	return c
}

func (a *app) configFile() string {
	if a.configPath != "" {
		return a.configPath
	}
	return project.DefaultConfigPath()
}

func backupCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore config, presets and bar inventory",
	}

	exportSub := &cobra.Command{
		Use:   "export FILE",
		Short: "Write all settings to one JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := project.LoadPresets(project.DefaultPresetPath())
			if err != nil {
				return err
			}
			inv, err := project.LoadInventory(project.DefaultInventoryPath(), a.cfg.BarLength)
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], a.cfg, presets, inv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
			return nil
		},
	}

	importSub := &cobra.Command{
		Use:   "import FILE",
		Short: "Restore settings from a backup, replacing the current ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(a.configFile(), data.Config); err != nil {
				return err
			}
			if err := project.SavePresets(project.DefaultPresetPath(), data.Presets); err != nil {
				return err
			}
			if err := project.SaveInventory(project.DefaultInventoryPath(), data.Inventory); err != nil {
				return err
			}
			a.log.Info("backup restored", "file", args[0], "version", data.Version, "created_at", data.CreatedAt)
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d presets and %d stock bars from %s\n",
				len(data.Presets.Presets), len(data.Inventory.Bars), args[0])
			return nil
		},
	}

	c.AddCommand(exportSub, importSub)
	return c
}
