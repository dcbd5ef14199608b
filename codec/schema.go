/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/suparena/propconfig/keys"
	"github.com/suparena/propconfig/value"
)

const schemaID = "https://github.com/suparena/propconfig/propconfig.schema.json"

// Schema describes the configuration document: an object with one typed,
// documented property per key and no other members.
func Schema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	for _, k := range keys.All() {
		info, _ := keys.Metadata(k)
		props.Set(info.Name, &jsonschema.Schema{
			Type:        schemaType(info.Type()),
			Description: info.Description,
			Default:     value.Interface(info.Default),
		})
	}

	return &jsonschema.Schema{
		Version:              jsonschema.Version,
		ID:                   schemaID,
		Title:                "propconfig settings",
		Description:          "Settings document for the property library configuration registry",
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

// SchemaJSON returns Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

func schemaType(t value.TypeTag) string {
	switch t {
	case value.TypeBool:
		return "boolean"
	case value.TypeDouble:
		return "number"
	case value.TypeInteger:
		return "integer"
	case value.TypeString:
		return "string"
	}
	return ""
}
