package composer

import (
	"regexp"
	"strconv"
	"strings"

	"reportforge/internal/intelligence"
)

const (
	maxTableRows    = 5
	maxMetricChars  = 25
	maxContextChars = 40
	maxBarPoints    = 5
	maxPiePoints    = 4
	minChartPoints  = 2
	maxLabelChars   = 10
)

// First run of digits, optionally with one decimal point.
var numericToken = regexp.MustCompile(`\d+(?:\.\d+)?`)

func titleWord(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// BuildTable turns extracted data points into a table block: at most five
// rows, metric and context cells truncated to their display budgets. Returns
// nil when there are no data points.
func BuildTable(points []intelligence.DataPoint) *RenderBlock {
	if len(points) == 0 {
		return nil
	}
	if len(points) > maxTableRows {
		points = points[:maxTableRows]
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		metric := p.Metric
		if metric == "" {
			metric = "Unknown"
		}
		if len(metric) > maxMetricChars {
			metric = metric[:maxMetricChars]
		}
		value := p.Value
		if value == "" {
			value = "N/A"
		}
		importance := titleWord(p.Importance)
		if importance == "" {
			importance = "Medium"
		}
		context := p.Context
		if len(context) > maxContextChars {
			context = context[:maxContextChars] + "..."
		}
		rows = append(rows, []string{metric, value, importance, context})
	}

	return &RenderBlock{
		Kind:  BlockTable,
		Style: StyleBody,
		Table: &TableData{
			Header: []string{"Metric", "Value", "Importance", "Context"},
			Rows:   rows,
		},
	}
}

// BuildChart extracts numeric values from the visualization data points and
// produces a chart block. A point whose value carries no parseable number is
// dropped; fewer than two surviving points means no chart. Bar charts keep at
// most five points, pie charts at most four.
func BuildChart(viz intelligence.VisualizationData) *RenderBlock {
	if !viz.HasVisualizableData {
		return nil
	}

	var maxPoints int
	switch viz.ChartType {
	case "bar":
		maxPoints = maxBarPoints
	case "pie":
		maxPoints = maxPiePoints
	default:
		return nil
	}

	labels := make([]string, 0, maxPoints)
	values := make([]float64, 0, maxPoints)
	for _, p := range viz.DataPoints {
		if len(values) == maxPoints {
			break
		}
		token := numericToken.FindString(p.Value)
		if token == "" {
			continue
		}
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		label := p.Label
		if label == "" {
			label = "Item"
		}
		if len(label) > maxLabelChars {
			label = label[:maxLabelChars]
		}
		labels = append(labels, label)
		values = append(values, v)
	}

	if len(values) < minChartPoints {
		return nil
	}
	return &RenderBlock{
		Kind:  BlockChart,
		Style: StyleBody,
		Chart: &ChartData{
			Kind:   viz.ChartType,
			Title:  viz.ChartTitle,
			Labels: labels,
			Values: values,
		},
	}
}
