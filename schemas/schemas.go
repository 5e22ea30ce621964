// Package schemas embeds the JSON Schemas for confmat input files.
package schemas

import _ "embed"

// MatrixSchemaJSON is the schema for confusion matrix files.
//
//go:embed matrix.schema.json
var MatrixSchemaJSON string
