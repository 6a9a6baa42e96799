// Package schemas embeds the JSON Schemas of the engine's documents.
package schemas

import _ "embed"

// Report is the schema of a generated report document.
//
//go:embed report.schema.json
var Report string

// CycleInput is the schema of a cycle input file read by the CLI.
//
//go:embed cycle_input.schema.json
var CycleInput string
