package ui

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"turmites/internal/core"
)

func TestLayoutRows(t *testing.T) {
	c := qt.New(t)
	rows := layoutRows(core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Pattern",
		Params: []core.Parameter{
			{Key: "id", Label: "Identifier", Value: "11"},
			{Key: "states", Value: "4"},
		},
	}}})
	c.Assert(rows, qt.HasLen, 3+len(Help))

	top := panelPadding + headerBaseline + lineHeight
	c.Assert(rows[0], qt.Equals, row{label: "Pattern", header: true, y: top})
	c.Assert(rows[1], qt.Equals, row{label: "Identifier", value: "11", y: top + lineHeight})
	c.Assert(rows[2], qt.Equals, row{label: "states", value: "4", y: top + 2*lineHeight})
	c.Assert(rows[3].label, qt.Equals, Help[0])
	c.Assert(rows[3].y, qt.Equals, top+3*lineHeight+2*groupGap)
	for i := 1; i < len(rows); i++ {
		c.Assert(rows[i].y > rows[i-1].y, qt.IsTrue)
	}
}

func TestLayoutRowsEmpty(t *testing.T) {
	c := qt.New(t)
	rows := layoutRows(core.ParameterSnapshot{})
	c.Assert(rows, qt.HasLen, len(Help))
	c.Assert(rows[0].y, qt.Equals, panelPadding+headerBaseline+lineHeight+groupGap)
}
