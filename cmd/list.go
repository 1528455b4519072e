package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chatvault/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	Long:  `List all stored chat sessions, most recent first, from the session index.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		displaySessions(store.ListSessions())
		return nil
	},
}

func displaySessions(sessions []internal.ChatIndexItem) {
	if len(sessions) == 0 {
		fmt.Println(headerStyle.Render("No sessions found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(sessions)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns with better spacing
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Last activity")+"\t"+titleStyle.Render("Preview")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 120))

	for _, session := range sessions {
		title := session.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}

		msgCount := countStyle.Render(strconv.Itoa(session.MessageCount))
		lastActivity := dateStyle.Render(formatTimestamp(session.Timestamp))

		preview := session.Preview
		if len(preview) > 40 {
			preview = preview[:37] + "..."
		}

		// Show short ID (first 8 chars) for readability
		shortID := session.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			idStyle.Render(shortID), title, msgCount, lastActivity, previewStyle.Render(preview))
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("Tip: use the full ID (e.g., ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(sessions[0].ID) +
		idStyle.Render(") with `chatvault show <id>`"))
}

// formatTimestamp renders a unix-millis timestamp relative to now
func formatTimestamp(millis int64) string {
	if millis <= 0 {
		return "—"
	}
	t := time.UnixMilli(millis)
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
