package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	pkgconfig "github.com/goran-ethernal/CertIndexor/pkg/config"
)

// GenerateSchema renders the JSON schema of the configuration file.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}

	schema := r.Reflect(&pkgconfig.Config{})
	schema.Title = "CertIndexor configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config schema: %w", err)
	}

	return data, nil
}
