package report

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"wifi-monitor/internal/models"
)

// minChartPoints is the fewest points a time chart can be drawn from.
const minChartPoints = 2

var (
	chartPadding = chart.Style{
		Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
	}
	axisStyle = chart.Style{
		StrokeColor: drawing.ColorBlack,
		FontSize:    10,
	}
	gridStyle = chart.Style{
		StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
		StrokeWidth: 1.0,
	}
)

var filenameReplacer = strings.NewReplacer(".", "_", ":", "_", "/", "_", "\\", "_", " ", "_")

// chartFilename turns a chart title into a safe lower-case PNG name.
func chartFilename(title string) string {
	return strings.ToLower(filenameReplacer.Replace(title)) + ".png"
}

func timeChart(title, yName string, formatter chart.ValueFormatter, series ...chart.Series) chart.Chart {
	graph := chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 16},
		Background: chartPadding,
		Width:      1200,
		Height:     400,
		XAxis: chart.XAxis{
			Name:           "Time",
			Style:          axisStyle,
			ValueFormatter: formatter,
		},
		YAxis: chart.YAxis{
			Name:           yName,
			Style:          axisStyle,
			GridMajorStyle: gridStyle,
		},
		Series: series,
	}
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph
}

func timeSeries(name string, color int, points []models.SeriesPoint) chart.TimeSeries {
	ts := chart.TimeSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor: chart.GetDefaultColor(color),
			StrokeWidth: 2,
		},
	}
	for _, p := range points {
		ts.XValues = append(ts.XValues, p.Timestamp)
		ts.YValues = append(ts.YValues, p.Value)
	}
	return ts
}

func writeChart(outputDir, title string, render func(io.Writer) error) error {
	file, err := os.Create(filepath.Join(outputDir, chartFilename(title)))
	if err != nil {
		return err
	}
	if err := render(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (g *Generator) generateSignalChart(ctx context.Context, outputDir string, r models.TimeRange) error {
	points, err := g.store.Series(ctx, models.MetricSignalDBM, r)
	if err != nil {
		return err
	}
	if len(points) < minChartPoints {
		return nil
	}

	graph := timeChart("Signal Strength", "Signal (dBm)", chart.TimeMinuteValueFormatter,
		timeSeries("signal", 0, points))

	return writeChart(outputDir, "signal strength", func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

func (g *Generator) generateLatencyChart(ctx context.Context, outputDir string, r models.TimeRange) error {
	avg, err := g.store.Series(ctx, models.MetricLatencyAvg, r)
	if err != nil {
		return err
	}
	if len(avg) < minChartPoints {
		return nil
	}

	avgSeries := timeSeries("average", 0, avg)
	series := []chart.Series{avgSeries}

	router, err := g.store.Series(ctx, models.MetricLatencyRouter, r)
	if err != nil {
		return err
	}
	if len(router) >= minChartPoints {
		series = append(series, timeSeries("router", 2, router))
	}

	// Add moving average
	if len(avg) > 10 {
		series = append(series, chart.SMASeries{
			Name: "Moving Avg",
			Style: chart.Style{
				StrokeColor:     chart.GetDefaultColor(1),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
			InnerSeries: avgSeries,
			Period:      10,
		})
	}

	graph := timeChart("Network Latency", "Latency (ms)", chart.TimeMinuteValueFormatter, series...)

	return writeChart(outputDir, "latency", func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

func (g *Generator) generateAvailabilityChart(ctx context.Context, outputDir string, r models.TimeRange) error {
	var series []chart.Series
	for i, metric := range []string{models.MetricConnected, models.MetricInternetReachable} {
		points, err := g.store.Series(ctx, metric, r)
		if err != nil {
			return err
		}
		hourly := hourlyUptime(points)
		if len(hourly) < minChartPoints {
			continue
		}
		series = append(series, timeSeries(metric, i, hourly))
	}
	if len(series) == 0 {
		return nil
	}

	graph := timeChart("Availability (Hourly)", "Uptime %", chart.TimeHourValueFormatter, series...)
	graph.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: 100}

	return writeChart(outputDir, "availability", func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

// hourlyUptime averages 0/1 samples per clock hour into percentages,
// ordered by hour.
func hourlyUptime(points []models.SeriesPoint) []models.SeriesPoint {
	type bucket struct{ sum, n float64 }
	buckets := map[time.Time]*bucket{}
	for _, p := range points {
		hour := p.Timestamp.UTC().Truncate(time.Hour)
		b, ok := buckets[hour]
		if !ok {
			b = &bucket{}
			buckets[hour] = b
		}
		b.sum += p.Value
		b.n++
	}

	out := make([]models.SeriesPoint, 0, len(buckets))
	for hour, b := range buckets {
		out = append(out, models.SeriesPoint{Timestamp: hour, Value: b.sum / b.n * 100})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func (g *Generator) generateEventChart(ctx context.Context, outputDir string, r models.TimeRange) error {
	counts, err := g.store.EventCountsByType(ctx, r)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return nil
	}

	bars := make([]chart.Value, 0, len(counts))
	top := 1.0
	for _, c := range counts {
		bars = append(bars, chart.Value{Label: c.Type.String(), Value: float64(c.Count)})
		top = max(top, float64(c.Count))
	}

	graph := chart.BarChart{
		Title:      "Events by Type",
		TitleStyle: chart.Style{FontSize: 16},
		Background: chartPadding,
		Width:      1200,
		Height:     400,
		BarWidth:   60,
		Bars:       bars,
		YAxis: chart.YAxis{
			Style: axisStyle,
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
	}

	return writeChart(outputDir, "events by type", func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}
