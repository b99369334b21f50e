package openapi_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxt-tools/policygen/internal/codegen/common"
	"github.com/nsxt-tools/policygen/internal/codegen/meta"
	"github.com/nsxt-tools/policygen/internal/codegen/openapi"
)

const document = `
openapi: 3.0.0
info:
  title: model
  version: "1.0"
paths: {}
components:
  schemas:
    PolicyResource:
      type: object
      properties:
        path:
          type: string
          readOnly: true
    PolicyWidget:
      allOf:
        - $ref: '#/components/schemas/PolicyResource'
        - type: object
          required: [tags]
          properties:
            name:
              type: string
              description: Widget name
            tags:
              type: array
              items:
                type: string
            ip_address:
              type: string
              readOnly: true
              description: Assigned address
`

func widget() *meta.Metadata {
	md := meta.New("PolicyWidget")
	md.Attrs = []*meta.Attribute{
		{Name: "Name", Owner: "PolicyWidget", Type: "string", Required: true, SchemaName: "name"},
		{Name: "Tags", Owner: "PolicyWidget", Type: "string", IsList: true, SchemaName: "tags"},
		{Name: "IPAddress", Owner: "PolicyWidget", Type: "string", IsReference: true, SchemaName: "ip_address", Description: "From the SDK"},
		{Name: "Path", Owner: "PolicyWidget", Type: "string", IsReference: true, SchemaName: "path"},
		{Name: "Extra", Owner: "PolicyWidget", Type: "string", IsReference: true, SchemaName: "extra"},
		{Name: "Peer", Owner: "PolicyWidget", Type: "Peer", IsReference: true, SchemaName: "peer", ObjectType: "Peer",
			Children: []*meta.Attribute{{Name: "Id", Parent: "Peer", Owner: "Peer", Type: "string", Required: true, SchemaName: "id"}}},
	}
	return md
}

func TestEnrich(t *testing.T) {
	doc, err := openapi.Parse(context.Background(), []byte(document))
	require.NoError(t, err)

	md := widget()
	stats := doc.Enrich(md, common.DefaultNamer)

	name, tags, ip, path, extra := md.Attrs[0], md.Attrs[1], md.Attrs[2], md.Attrs[3], md.Attrs[4]

	assert.True(t, name.Required)
	assert.Equal(t, "Widget name", name.Description)

	assert.True(t, tags.Required, "listed in required")
	assert.False(t, tags.Computed)

	assert.True(t, ip.Computed)
	assert.False(t, ip.Required)
	assert.Equal(t, "From the SDK", ip.Description, "existing descriptions are kept")

	assert.True(t, path.Computed, "inherited through allOf")

	assert.False(t, extra.Computed)
	assert.False(t, extra.Required)

	assert.Equal(t, openapi.Stats{Matched: 4, Required: 1, Computed: 2, Described: 1, MissingType: 1}, stats)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))

	doc, err := openapi.Load(context.Background(), path)
	require.NoError(t, err)
	assert.NotZero(t, doc.Enrich(widget(), common.DefaultNamer).Matched)

	_, err = openapi.Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
