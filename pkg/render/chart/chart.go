// Package chart renders the market series as an area chart: interactive
// HTML through go-echarts or a static PNG through gonum/plot.
package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/bensonglobal/meridian/pkg/dataset"
	"github.com/bensonglobal/meridian/pkg/errors"
)

// Options configures chart output.
type Options struct {
	Title  string
	Width  int // pixels
	Height int // pixels
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Market Allocation"
	}
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 300
	}
	return o
}

type series struct {
	name  string
	color string
	fill  bool
	width float32
	value func(dataset.MarketPoint) float64
}

// Private and Public are filled areas; TG4 is drawn as a plain line.
var seriesList = []series{
	{name: "Private", color: "#D4AF37", fill: true, width: 2, value: func(m dataset.MarketPoint) float64 { return m.Private }},
	{name: "Public", color: "#666666", fill: true, width: 1, value: func(m dataset.MarketPoint) float64 { return m.Public }},
	{name: "TG4", color: "#ffffff", width: 1, value: func(m dataset.MarketPoint) float64 { return m.TG4 }},
}

func validate(points []dataset.MarketPoint) error {
	if len(points) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "market series is empty")
	}
	return nil
}

// HTML renders an interactive page.
func HTML(points []dataset.MarketPoint, o Options) ([]byte, error) {
	if err := validate(points); err != nil {
		return nil, err
	}
	o = o.withDefaults()

	names := make([]string, len(points))
	for i, p := range points {
		names[i] = p.Name
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       o.Title,
			Theme:           "dark",
			BackgroundColor: "#0B0B0B",
			Width:           fmt.Sprintf("%dpx", o.Width),
			Height:          fmt.Sprintf("%dpx", o.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	line.SetXAxis(names)
	for _, s := range seriesList {
		data := make([]opts.LineData, len(points))
		for i, p := range points {
			data[i] = opts.LineData{Value: s.value(p)}
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.color, Width: s.width}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.color}),
		}
		if s.fill {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Color: s.color, Opacity: opts.Float(0.3)}))
		}
		line.AddSeries(s.name, data, seriesOpts...)
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render chart html")
	}
	return buf.Bytes(), nil
}

// PNG renders a static image.
func PNG(points []dataset.MarketPoint, o Options) ([]byte, error) {
	if err := validate(points); err != nil {
		return nil, err
	}
	o = o.withDefaults()

	p := plot.New()
	p.Title.Text = o.Title
	p.BackgroundColor = hex("#0B0B0B")
	p.Title.TextStyle.Color = hex("#D4AF37")
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Color = hex("#444444")
		ax.Tick.Color = hex("#444444")
		ax.Tick.Label.Color = hex("#666666")
	}
	p.Legend.TextStyle.Color = hex("#999999")
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	names := make([]string, len(points))
	for i, m := range points {
		names[i] = m.Name
	}
	p.NominalX(names...)

	for _, s := range seriesList {
		xys := make(plotter.XYs, len(points))
		for i, m := range points {
			xys[i] = plotter.XY{X: float64(i), Y: s.value(m)}
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "series %s", s.name)
		}
		c := hex(s.color)
		l.Color = c
		l.Width = vg.Points(float64(s.width))
		if s.fill {
			l.FillColor = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 60}
		}
		p.Add(l)
		p.Legend.Add(s.name, l)
	}

	// 96 dpi screen pixels to points.
	w := vg.Length(o.Width) * vg.Inch / 96
	h := vg.Length(o.Height) * vg.Inch / 96
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render chart png")
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode chart png")
	}
	return buf.Bytes(), nil
}

func hex(s string) color.NRGBA {
	var c color.NRGBA
	c.A = 0xff
	_, _ = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	return c
}
