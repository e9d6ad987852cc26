package lsystem

import (
	"strings"
)

const indent = "    "

// String renders ls as DSL source that parses back to an equivalent
// L-system: constants, then the lsystem call with description, alphabet,
// axiom, productions and ignore list.
func (ls *LSystem) String() string {
	return ls.Parameters.String()
}

func (p Parameters) String() string {
	var sb strings.Builder
	sb.WriteString(p.Constants.String())
	if p.Name != "" {
		sb.WriteString(p.Name)
		sb.WriteString(" = ")
	}
	sb.WriteString("lsystem(\n")

	if p.Description != "" {
		sb.WriteString(indent + "description: \"" + p.Description + "\",\n")
	}

	alphabet := "{}"
	if p.Alphabet != nil {
		alphabet = p.Alphabet.String()
	}
	sb.WriteString(indent + "alphabet: " + alphabet + ",\n")

	axiom := ""
	if p.Axiom != nil {
		axiom = p.Axiom.String()
	}
	sb.WriteString(strings.TrimRight(indent+"axiom: "+axiom, " ") + ",\n")

	sb.WriteString(indent + "productions: {")
	for i, production := range p.Productions {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("\n" + indent + indent + production.String())
	}
	if len(p.Productions) > 0 {
		sb.WriteString("\n" + indent)
	}
	sb.WriteString("}")

	if len(p.Ignore) > 0 {
		names := make([]string, len(p.Ignore))
		for i, d := range p.Ignore {
			names[i] = d.String()
		}
		sb.WriteString(",\n" + indent + "ignore: {" + strings.Join(names, ", ") + "}")
	}
	sb.WriteString("\n)\n")
	return sb.String()
}
