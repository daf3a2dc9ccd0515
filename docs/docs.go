// Package docs carries the OpenAPI document served by the Swagger UI.
package docs

import (
	_ "embed"
)

//go:embed swagger.json
var OpenAPI []byte
