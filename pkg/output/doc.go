// Package output renders goal results and errors for the command line.
//
// Four formats are supported:
//
//	term  lipgloss styles and pterm prefixes, for interactive terminals
//	text  the plain result template, for pipes and logs
//	json  encoding/json, indented
//	yaml  gopkg.in/yaml.v3
//
// FormatAuto picks term when the writer is a color-capable terminal and
// NO_COLOR is unset, and text otherwise.
package output
