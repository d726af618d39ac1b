package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	schemavalidator "github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var embeddedSchema string

// schemaURL is the $id of the embedded schema
const schemaURL = "https://github.com/umputun/finfeed/pkg/config/config"

// compiledSchema compiles the embedded schema once, nothing is fetched over the network
var compiledSchema = sync.OnceValues(func() (*schemavalidator.Schema, error) {
	doc, err := schemavalidator.UnmarshalJSON(strings.NewReader(embeddedSchema))
	if err != nil {
		return nil, fmt.Errorf("parse embedded schema: %w", err)
	}
	c := schemavalidator.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add embedded schema: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}
	return sch, nil
})

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Error message starts with dotted paths of all violating fields.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	inst, err := schemavalidator.UnmarshalJSON(bytes.NewReader(configData))
	if err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		var verr *schemavalidator.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("validation failed at %s: %w", strings.Join(violations(verr), ", "), err)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// violations collects sorted dotted instance paths of the leaf validation errors
func violations(verr *schemavalidator.ValidationError) []string {
	if len(verr.Causes) == 0 {
		if len(verr.InstanceLocation) == 0 {
			return []string{"config"}
		}
		return []string{strings.Join(verr.InstanceLocation, ".")}
	}
	var res []string
	for _, c := range verr.Causes {
		res = append(res, violations(c)...)
	}
	slices.Sort(res)
	return slices.Compact(res)
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
