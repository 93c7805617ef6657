package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bensonglobal/meridian/pkg/social"
)

var (
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1).Width(60)
	cardHeading = lipgloss.NewStyle().Bold(true).Foreground(colorGold)
)

// socialCommand creates the social command.
func (c *CLI) socialCommand() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:       "social [platform...]",
		Short:     "Show the latest post per platform",
		Long:      `Show the latest simulated post for each platform. With no arguments every platform is fetched.`,
		ValidArgs: platformNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := []social.Option{social.WithDelay(cfg.Social.Delay.D())}
			if seed != 0 {
				opts = append(opts, social.WithSeed(seed))
			}
			feed := social.NewFeed(opts...)

			if len(args) == 0 {
				args = platformNames()
			}
			for _, a := range args {
				if _, err := social.ParsePlatform(a); err != nil {
					printWarning("%s: unknown platform, showing LinkedIn", a)
				}
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			spinner := newSpinnerWithContext(cmd.Context(), "Fetching updates...")
			spinner.Start()
			updates, err := fetchUpdates(cmd.Context(), feed, args)
			spinner.Stop()
			if err != nil {
				return err
			}
			prog.done("fetched updates", "count", len(updates))
			for _, u := range updates {
				writeCard(cmd.OutOrStdout(), u)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "fix the post and stats selection")
	return cmd
}

// fetchUpdates asks src for every platform concurrently, keeping argument order.
func fetchUpdates(ctx context.Context, src social.Source, platforms []string) ([]social.Update, error) {
	out := make([]social.Update, len(platforms))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range platforms {
		g.Go(func() error {
			u, err := src.Latest(ctx, p)
			if err != nil {
				return err
			}
			out[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func writeCard(w io.Writer, u social.Update) {
	var b strings.Builder
	b.WriteString(cardHeading.Render(strings.ToUpper(string(u.Platform))))
	b.WriteString(StyleDim.Render("  " + u.Handle + " · " + u.Date))
	b.WriteString("\n")
	b.WriteString(StyleValue.Render(u.Content))
	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render(u.Stats))
	if u.Image != "" {
		b.WriteString("  " + StyleLink.Render(u.Image))
	}
	fmt.Fprintln(w, cardStyle.Render(b.String()))
}

func platformNames() []string {
	ps := social.Platforms()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return names
}
