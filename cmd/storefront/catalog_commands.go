package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/storefront/internal/catalog"
	"github.com/jask/storefront/internal/session"
	"github.com/jask/storefront/internal/tui"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the catalog as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, ctx)
		},
	}
}

func runList(cmd *cobra.Command, ctx *commandContext) error {
	_, state, err := ctx.loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(state.Apps) == 0 {
		fmt.Fprintln(out, "No apps available.")
		return nil
	}
	fmt.Fprintln(out, renderCatalogTable(state.Apps))
	return nil
}

func renderCatalogTable(apps []catalog.App) string {
	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, []string{
			strconv.Itoa(app.ID),
			app.Name,
			app.Subtitle,
			fmt.Sprintf("%.1f", app.Rating),
			strings.Trim(tui.FormatReviews(app.Reviews), "()"),
			app.Version,
			app.Size,
		})
	}
	return renderTable(
		[]string{"ID", "Name", "Subtitle", "Rating", "Reviews", "Version", "Size"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignRight},
	)
}

func parseAppID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid app id %q", arg)
	}
	return id, nil
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one app's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			sess, _, err := ctx.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := sess.SelectID(id); err != nil {
				return appLookupError(id, err)
			}
			app, _ := sess.Selected()
			fmt.Fprint(cmd.OutOrStdout(), formatAppDetails(app))
			return nil
		},
	}
}

func formatAppDetails(app catalog.App) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", app.Name)
	if app.Subtitle != "" {
		fmt.Fprintf(&b, "%s\n", app.Subtitle)
	}
	fmt.Fprintf(&b, "%s %s\n", tui.FormatRating(app.Rating), tui.FormatReviews(app.Reviews))
	if line := tui.FormatVersion(app.Version, app.Size); line != "" {
		fmt.Fprintf(&b, "%s\n", line)
	}
	if app.IconURL != "" {
		fmt.Fprintf(&b, "Icon: %s\n", app.IconURL)
	}
	fmt.Fprintf(&b, "Package: %s\n", app.APKURL)
	if len(app.Screenshots) > 0 {
		fmt.Fprintf(&b, "Screenshots:\n")
		for i, s := range app.Screenshots {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
		}
	}
	if d := strings.TrimSpace(app.Description); d != "" {
		fmt.Fprintf(&b, "\n%s\n", d)
	}
	return b.String()
}

func newInstallCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "install <id>",
		Short: "Hand an app's package to the configured install handler",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			sess, _, err := ctx.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := sess.SelectID(id); err != nil {
				return appLookupError(id, err)
			}
			app, _ := sess.Selected()
			if err := sess.Install(); err != nil {
				return fmt.Errorf("install %s: %w", app.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "install requested: %s (%s)\n", app.Name, app.APKURL)
			return nil
		},
	}
}

func appLookupError(id int, err error) error {
	if errors.Is(err, session.ErrUnknownApp) {
		return fmt.Errorf("no app with id %d in the catalog", id)
	}
	return err
}
