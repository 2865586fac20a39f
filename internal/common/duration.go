package common

import (
	"time"

	"github.com/invopop/jsonschema"
)

// Duration wraps time.Duration so it can be expressed as "30s", "1m" and similar
// strings in YAML, JSON and TOML configuration files.
type Duration struct {
	time.Duration
}

// NewDuration returns a Duration wrapping d.
func NewDuration(d time.Duration) Duration {
	return Duration{Duration: d}
}

// UnmarshalText parses a duration string such as "300ms" or "1h30m".
func (d *Duration) UnmarshalText(data []byte) error {
	duration, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}

	d.Duration = duration
	return nil
}

// MarshalText renders the duration in time.Duration string form.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// JSONSchema describes Duration as a string in generated config schemas.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Duration",
		Description: "Duration expressed in units: [ns, us, ms, s, m, h] e.g. 1m, 300ms, 1h30m",
		Examples: []any{
			"1m",
			"300ms",
		},
	}
}
