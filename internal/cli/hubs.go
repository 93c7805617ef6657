package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bensonglobal/meridian/pkg/dataset"
	"github.com/bensonglobal/meridian/pkg/geo"
)

// hubsCommand creates the hubs command.
func (c *CLI) hubsCommand() *cobra.Command {
	var (
		width, height int
		asJSON        bool
		datasetPath   string
	)

	cmd := &cobra.Command{
		Use:   "hubs",
		Short: "List hubs, their links and projected positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if datasetPath != "" {
				cfg.Dataset.Path = datasetPath
			}
			ds, err := loadDataset(cfg, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			proj := geo.Fit(width, height)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(proj.ProjectAll(ds.Hubs))
			}
			return writeHubTable(cmd.OutOrStdout(), ds, proj)
		},
	}

	cmd.Flags().IntVar(&width, "width", defaultWidth, "container width for projected positions")
	cmd.Flags().IntVar(&height, "height", defaultHeight, "container height for projected positions")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print projected positions as JSON")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "dataset YAML or JSON file (overrides config)")

	return cmd
}

// writeHubTable renders one row per hub with its links and screen position.
func writeHubTable(w io.Writer, ds *dataset.Dataset, proj geo.Projection) error {
	links := make(map[string][]string, len(ds.Hubs))
	for _, conn := range ds.Connections {
		links[conn.Source] = append(links[conn.Source], conn.Target)
		links[conn.Target] = append(links[conn.Target], conn.Source)
	}

	rows := make([][]string, 0, len(ds.Hubs))
	for _, h := range ds.Hubs {
		p := proj.ProjectHub(h)
		linked := "-"
		if l := links[h.ID]; len(l) > 0 {
			linked = strings.Join(l, ", ")
		}
		rows = append(rows, []string{
			strings.ToUpper(h.ID),
			h.Role,
			h.Status,
			fmt.Sprintf("%.1f, %.1f", p.X, p.Y),
			linked,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Hub", "Role", "Status", "Position", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorGold).Bold(true)
			case col == 3:
				return base.Foreground(colorGray)
			case col == 4:
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})

	_, err := fmt.Fprintln(w, StyleTitle.Render(ds.Center)+StyleDim.Render(fmt.Sprintf("  %d hubs · %d links", len(ds.Hubs), len(ds.Connections))))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, t.Render())
	return err
}
