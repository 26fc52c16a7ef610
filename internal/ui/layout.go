package ui

import "turmites/internal/core"

const (
	panelPadding   = 12
	headerBaseline = 14
	lineHeight     = 18
	groupGap       = 8
)

// Help lists the viewer key bindings shown under the pattern details.
var Help = []string{
	"N / P  next / previous",
	"R      new palette",
	"Q      quit",
}

// row is one line of the HUD panel. Headers span the panel; other rows
// have a left aligned label and a right aligned value.
type row struct {
	label  string
	value  string
	header bool
	y      int
}

// layoutRows places the snapshot groups below the title, followed by the
// key help.
func layoutRows(snap core.ParameterSnapshot) []row {
	var rows []row
	y := panelPadding + headerBaseline + lineHeight
	for _, g := range snap.Groups {
		if g.Name != "" {
			rows = append(rows, row{label: g.Name, header: true, y: y})
			y += lineHeight
		}
		for _, p := range g.Params {
			label := p.Label
			if label == "" {
				label = p.Key
			}
			rows = append(rows, row{label: label, value: p.Value, y: y})
			y += lineHeight
		}
		y += groupGap
	}
	y += groupGap
	for _, h := range Help {
		rows = append(rows, row{label: h, y: y})
		y += lineHeight
	}
	return rows
}
