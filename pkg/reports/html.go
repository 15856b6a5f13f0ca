// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package reports

import (
	"encoding/base64"
	"encoding/json"
	"html/template"
	"io"
	"path/filepath"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	ptypes "github.com/MetalBlueberry/go-plotly/pkg/types"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// PlotlySrc is the script loaded by the HTML report. It matches the version of the generated graph objects.
const PlotlySrc = "https://cdn.plot.ly/plotly-2.34.0.min.js"

var htmlTemplate = template.Must(template.New("plotly").Parse(`<!DOCTYPE html>
<head>
	<meta charset="utf-8">
	<title>{{ .Title }}</title>
	<script src="{{ .Src }}"></script>
</head>
<body>
	<div id="distribution"></div>
	<script>
		figure = JSON.parse(atob('{{ .Figure }}'))
		Plotly.newPlot('distribution', figure);
	</script>
</body>
</html>
`))

// PlotlyFigure returns the distribution as a grouped bar chart: one group per class, one trace per split.
func (d *Distribution) PlotlyFigure() *grob.Fig {
	fig := &grob.Fig{
		Layout: &grob.Layout{
			Title:   &grob.LayoutTitle{Text: ptypes.S("Images per class")},
			Barmode: grob.BarBarmodeGroup,
			Yaxis: &grob.LayoutYaxis{
				Title:    &grob.LayoutYaxisTitle{Text: ptypes.S("images")},
				Showgrid: ptypes.B(true),
			},
		},
	}
	for splitIdx, splitName := range d.Splits {
		fig.Data = append(fig.Data, &grob.Bar{
			Name: ptypes.S(splitName),
			X:    ptypes.DataArray(d.Classes),
			Y:    ptypes.DataArray(d.Counts[splitIdx]),
		})
	}
	return fig
}

// EncodeHTML writes a standalone HTML page with the interactive distribution chart.
// The page loads Plotly from PlotlySrc.
func (d *Distribution) EncodeHTML(w io.Writer) error {
	figAsJSON, err := json.Marshal(d.PlotlyFigure())
	if err != nil {
		return errors.Wrap(err, "failed to marshal class distribution figure")
	}
	data := struct{ Title, Src, Figure string }{
		Title:  "Images per class",
		Src:    PlotlySrc,
		Figure: base64.StdEncoding.EncodeToString(figAsJSON),
	}
	return errors.Wrap(htmlTemplate.Execute(w, data), "failed to render class distribution page")
}

// WriteHTML writes the interactive distribution chart to reportsDir/HTMLFileName.
func WriteHTML(fs afero.Fs, reportsDir string, d *Distribution) error {
	filePath := filepath.Join(reportsDir, HTMLFileName)
	f, err := fs.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", filePath)
	}
	if err = d.EncodeHTML(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %q", filePath)
	}
	return errors.Wrapf(f.Close(), "failed to close %q", filePath)
}
