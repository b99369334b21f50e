// Package openapi refines loaded metadata with a companion OpenAPI 3 document
// describing the same model types.
package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/nsxt-tools/policygen/internal/codegen/common"
	"github.com/nsxt-tools/policygen/internal/codegen/meta"
)

// Document is a loaded OpenAPI document.
type Document struct {
	spec *openapi3.T
}

// Load reads an OpenAPI document from a file. Local references are resolved.
func Load(ctx context.Context, path string) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load openapi document %s: %w", path, err)
	}
	return &Document{spec: spec}, nil
}

// Parse reads an OpenAPI document from memory.
func Parse(ctx context.Context, data []byte) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	return &Document{spec: spec}, nil
}

// Stats counts the changes made by Enrich.
type Stats struct {
	Matched     int // attributes found in a component schema
	Required    int
	Computed    int
	Described   int
	MissingType int // owner types without a component schema
}

// property is one flattened schema property.
type property struct {
	readOnly    bool
	description string
}

type component struct {
	properties map[string]property
	required   map[string]bool
}

// Enrich updates the attributes of md from components.schemas[<Owner>]:
// listed in required => Required; readOnly => Computed and not Required; a
// property description fills an empty Description. Properties are matched by
// the lower-separated field name, then by the schema name.
func (d *Document) Enrich(md *meta.Metadata, namer common.Namer) Stats {
	var stats Stats
	cache := make(map[string]*component)
	missing := make(map[string]bool)

	for _, attr := range md.Attributes() {
		c, ok := cache[attr.Owner]
		if !ok {
			c = d.component(attr.Owner)
			cache[attr.Owner] = c
		}
		if c == nil {
			if !missing[attr.Owner] {
				missing[attr.Owner] = true
				stats.MissingType++
			}
			continue
		}

		key := namer.ToLowerSeparated(attr.Name)
		prop, found := c.properties[key]
		if !found {
			key = attr.SchemaName
			prop, found = c.properties[key]
		}
		if !found {
			continue
		}
		stats.Matched++

		switch {
		case prop.readOnly:
			if !attr.Computed {
				stats.Computed++
			}
			attr.Computed = true
			attr.Required = false
		case c.required[key] && !attr.Required:
			attr.Required = true
			stats.Required++
		}
		if attr.Description == "" && prop.description != "" {
			attr.Description = prop.description
			stats.Described++
		}
	}
	return stats
}

// component flattens a component schema and its allOf members.
func (d *Document) component(name string) *component {
	if d.spec == nil || d.spec.Components == nil {
		return nil
	}
	ref, ok := d.spec.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil
	}
	c := &component{
		properties: make(map[string]property),
		required:   make(map[string]bool),
	}
	flatten(c, ref.Value, make(map[*openapi3.Schema]bool))
	return c
}

func flatten(c *component, s *openapi3.Schema, seen map[*openapi3.Schema]bool) {
	if s == nil || seen[s] {
		return
	}
	seen[s] = true
	for _, member := range s.AllOf {
		if member != nil {
			flatten(c, member.Value, seen)
		}
	}
	for _, name := range s.Required {
		c.required[name] = true
	}
	for name, ref := range s.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		c.properties[name] = property{readOnly: ref.Value.ReadOnly, description: ref.Value.Description}
	}
}
