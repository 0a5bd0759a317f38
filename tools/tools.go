//go:build tools

package tools

// Pins the code generator behind internal/api and the goose CLI for ad-hoc
// migration work; the service itself migrates through `resaleops migrate`.
// Run `go mod tidy` after adding/removing tools here.

import (
	_ "github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen"
	_ "github.com/pressly/goose/v3/cmd/goose"
)
