// Package chart draws grouped bar charts as standalone SVG documents.
package chart

import (
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"
)

// Series is one bar colour in every group.
type Series struct {
	Name  string
	Color string
}

// Group is one category on the x axis with a value per series.
type Group struct {
	Label  string
	Values []float64
}

// Options configure the chart frame.
type Options struct {
	Width  int
	Height int
	Title  string
	XLabel string
	YLabel string
	// FormatTick renders y-axis tick values. Defaults to plain integers.
	FormatTick func(float64) string
}

const (
	marginLeft   = 96.0
	marginRight  = 24.0
	marginTop    = 64.0
	marginBottom = 150.0
	tickCount    = 5
	groupFill    = 0.8
)

// BarChart writes an SVG grouped bar chart to w.
func BarChart(w io.Writer, series []Series, groups []Group, opts Options) error {
	if len(series) == 0 {
		return errors.New("bar chart needs at least one series")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("bar chart size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	format := opts.FormatTick
	if format == nil {
		format = func(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) }
	}

	width, height := float64(opts.Width), float64(opts.Height)
	plotW := width - marginLeft - marginRight
	plotH := height - marginTop - marginBottom
	if plotW <= 0 || plotH <= 0 {
		return fmt.Errorf("bar chart %dx%d is too small for its margins", opts.Width, opts.Height)
	}

	step, top := niceScale(maxValue(groups), tickCount)
	yOf := func(v float64) float64 {
		if v < 0 {
			v = 0
		}
		return marginTop + plotH - v/top*plotH
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="Helvetica, Arial, sans-serif">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	b.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")
	if opts.Title != "" {
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-size="20" font-weight="bold">%s</text>`+"\n",
			num(width/2), num(marginTop/2+6), html.EscapeString(opts.Title))
	}

	for i, n := 0, int(math.Round(top/step)); i <= n; i++ {
		value := float64(i) * step
		y := yOf(value)
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#000" stroke-opacity="0.15"/>`+"\n",
			num(marginLeft), num(y), num(marginLeft+plotW), num(y))
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="end" font-size="12">%s</text>`+"\n",
			num(marginLeft-8), num(y+4), html.EscapeString(format(value)))
	}

	fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#333"/>`+"\n",
		num(marginLeft), num(marginTop+plotH), num(marginLeft+plotW), num(marginTop+plotH))

	if len(groups) > 0 {
		groupW := plotW / float64(len(groups))
		barW := groupW * groupFill / float64(len(series))
		for gi, group := range groups {
			left := marginLeft + float64(gi)*groupW + groupW*(1-groupFill)/2
			for si, s := range series {
				v := 0.0
				if si < len(group.Values) {
					v = group.Values[si]
				}
				y := yOf(v)
				fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"><title>%s: %s</title></rect>`+"\n",
					num(left+float64(si)*barW), num(y), num(barW), num(marginTop+plotH-y), html.EscapeString(s.Color),
					html.EscapeString(group.Label+" "+s.Name), html.EscapeString(format(v)))
			}
			cx := marginLeft + (float64(gi)+0.5)*groupW
			cy := marginTop + plotH + 14
			fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="end" font-size="12" transform="rotate(-45 %s %s)">%s</text>`+"\n",
				num(cx), num(cy), num(cx), num(cy), html.EscapeString(group.Label))
		}
	}

	if opts.XLabel != "" {
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-size="14">%s</text>`+"\n",
			num(marginLeft+plotW/2), num(height-12), html.EscapeString(opts.XLabel))
	}
	if opts.YLabel != "" {
		fmt.Fprintf(&b, `<text x="18" y="%s" text-anchor="middle" font-size="14" transform="rotate(-90 18 %s)">%s</text>`+"\n",
			num(marginTop+plotH/2), num(marginTop+plotH/2), html.EscapeString(opts.YLabel))
	}

	legendX := marginLeft + plotW - 130
	for i, s := range series {
		y := marginTop + 8 + float64(i)*20
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="14" height="14" fill="%s"/>`+"\n",
			num(legendX), num(y), html.EscapeString(s.Color))
		fmt.Fprintf(&b, `<text x="%s" y="%s" font-size="13">%s</text>`+"\n",
			num(legendX+20), num(y+12), html.EscapeString(s.Name))
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func maxValue(groups []Group) float64 {
	m := 0.0
	for _, g := range groups {
		for _, v := range g.Values {
			if v > m {
				m = v
			}
		}
	}
	return m
}

// niceScale picks a 1, 2, or 5 times power-of-ten step so that about ticks
// steps cover peak, returning the step and the axis top.
func niceScale(peak float64, ticks int) (step, top float64) {
	if peak <= 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
		return 1, float64(ticks)
	}
	raw := peak / float64(ticks)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		step = mag
	case norm <= 2:
		step = 2 * mag
	case norm <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}
	top = math.Ceil(peak/step) * step
	return step, top
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
