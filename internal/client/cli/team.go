package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/clinicsite/internal/client/models"
)

var errUsage = errors.New("usage")

// List prints the team collection.
func (a *App) List(ctx context.Context) error {
	items, err := a.teamService.TeamMembers(ctx)
	if err != nil {
		return a.noData(ctx, err)
	}
	a.printTable(items)
	return nil
}

// Refresh bypasses the cache and prints the fresh collection.
func (a *App) Refresh(ctx context.Context) error {
	items, err := a.teamService.RefreshTeamMembers(ctx)
	if err != nil {
		return a.noData(ctx, err)
	}
	fmt.Fprintf(a.out, "Refreshed, %d members\n", len(items))
	a.printTable(items)
	return nil
}

// Clear drops the cached collection.
func (a *App) Clear(_ context.Context) error {
	a.teamService.ClearCache()
	fmt.Fprintln(a.out, "Team cache cleared")
	return nil
}

// Show prints the member with the given numeric id.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid id %q\n", args[0])
		return err
	}

	m, err := a.teamService.TeamMemberByID(ctx, id)
	if err != nil {
		return a.noData(ctx, err)
	}
	a.printMember(m)
	return nil
}

// Find prints the first member whose name contains the query.
func (a *App) Find(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: find <name>")
		return errUsage
	}

	m, err := a.teamService.TeamMemberByName(ctx, strings.Join(args, " "))
	if err != nil {
		return a.noData(ctx, err)
	}
	a.printMember(m)
	return nil
}

// Image prints the public URL of an asset.
func (a *App) Image(_ context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: image <assetId>")
		return errUsage
	}
	fmt.Fprintln(a.out, a.teamService.ImageURL(args[0]))
	return nil
}

func (a *App) noData(ctx context.Context, err error) error {
	a.log.Warn(ctx, "team data unavailable", "error", err)
	fmt.Fprintln(a.out, noDataMessage)
	return err
}

func (a *App) printMember(m *models.TeamMember) {
	if m == nil {
		fmt.Fprintln(a.out, "Not found")
		return
	}
	fmt.Fprintf(a.out, "#%d %s\n", m.ID, m.Name)
	if m.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", m.Description)
	}
	if m.Image != "" {
		fmt.Fprintf(a.out, "  image: %s\n", a.teamService.ImageURL(m.Image))
	}
}

func (a *App) printTable(items []models.TeamMember) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "(empty)")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, m := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\n", m.ID, m.Name, m.Description)
	}
	_ = w.Flush()
}
