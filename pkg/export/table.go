// Package export renders the visible groups outside the terminal UI:
// plain tables, JSON, an SVG swatch sheet and the HTML group page.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/kraitsura/groups_viewer/pkg/filter"
	"github.com/kraitsura/groups_viewer/pkg/model"
)

// Output formats accepted by the list command
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Write renders the groups visible under s in the requested format
func Write(w io.Writer, format string, groups []model.Group, s filter.State) error {
	switch format {
	case "", FormatTable:
		return WriteTable(w, groups, s)
	case FormatJSON:
		return WriteJSON(w, groups, s)
	}
	return fmt.Errorf("unknown output format %q (want table or json)", format)
}

// WriteTable prints the visible groups as a table, followed by a count line
func WriteTable(w io.Writer, groups []model.Group, s filter.State) error {
	visible := filter.Apply(groups, s)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "NAME", "TYPE", "MEMBERS", "COLOR", "FRIENDS"})
	table.SetAutoWrapText(false)
	for _, g := range visible {
		table.Append([]string{
			strconv.Itoa(g.ID),
			g.Name,
			g.PrivacyLabel(),
			strconv.Itoa(g.MembersCount),
			g.AvatarColor,
			friendsCell(g),
		})
	}
	table.Render()

	_, err := fmt.Fprintf(w, "%d of %d groups (%s)\n", len(visible), len(groups), filter.Summary(s))
	return err
}

func friendsCell(g model.Group) string {
	if !g.HasFriends() {
		return ""
	}
	names := make([]string, len(g.Friends))
	for i, f := range g.Friends {
		names[i] = f.FullName()
	}
	return fmt.Sprintf("%d: %s", len(g.Friends), strings.Join(names, ", "))
}

// WriteJSON writes the visible groups as an indented JSON array
func WriteJSON(w io.Writer, groups []model.Group, s filter.State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(filter.Apply(groups, s))
}
