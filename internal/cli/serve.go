package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/DoorCraft/internal/archive"
	"github.com/piwi3910/DoorCraft/internal/httpapi"
)

func historyCmd(a *app) *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "history",
		Short: "List archived quotes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeDB, err := a.openArchive(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			quotes, err := repo.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(quotes) == 0 {
				fmt.Fprintln(out, "No quotes archived")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "REFERENCE\tDATE\tMECHANISM\tOPENING\tTOTAL")
			for _, q := range quotes {
				c := q.Configuration
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f x %.0f\t%s %d\n",
					q.Reference, q.CreatedAt.Local().Format("2006-01-02 15:04"), c.Mechanism,
					c.OpeningWidth, c.OpeningHeight, q.Price.Currency, q.Price.TotalPrice)
			}
			return tw.Flush()
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", archive.DefaultListLimit, "maximum number of quotes")
	c.AddCommand(historyDeleteCmd(a))
	return c
}

func historyDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete REFERENCE",
		Short: "Remove an archived quote by reference or ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := a.openArchive(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			q, err := repo.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := repo.Delete(cmd.Context(), q.ID); err != nil {
				return err
			}
			a.log.Info("quote deleted", "reference", q.Reference, "id", q.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted quote %s\n", q.Reference)
			return nil
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.ServerAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env := &httpapi.Env{
				Log:      a.log,
				Prices:   a.prices,
				Defaults: a.defaults,
				Company:  a.cfg.CompanyName,
			}

			repo, closeDB, err := a.openArchive(ctx)
			switch {
			case errors.Is(err, errNoArchive):
				a.log.Info("serving without quote archive")
			case err != nil:
				return err
			default:
				defer func() { _ = closeDB() }()
				env.Quotes = repo
			}

			return env.ListenAndServe(ctx, addr)
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return c
}
