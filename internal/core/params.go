package core

import "strings"

// Parameter is a single named setting shown to the user.
type Parameter struct {
	Key   string
	Label string
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures a set of settings at one point in time.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lines renders the snapshot as "Label: value" lines, one group header per
// group.
func (s ParameterSnapshot) Lines() []string {
	var lines []string
	for _, g := range s.Groups {
		if g.Name != "" {
			lines = append(lines, g.Name)
		}
		for _, p := range g.Params {
			label := p.Label
			if label == "" {
				label = p.Key
			}
			lines = append(lines, "  "+label+": "+p.Value)
		}
	}
	return lines
}

// Inline renders the snapshot as space separated key=value pairs.
func (s ParameterSnapshot) Inline() string {
	var b strings.Builder
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(p.Key)
			b.WriteByte('=')
			b.WriteString(p.Value)
		}
	}
	return b.String()
}
