package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func newInspect(format string, out *bytes.Buffer) *Inspect {
	return &Inspect{
		Resource:    "PolicyWidget",
		SourceFlags: SourceFlags{SDKPath: testSDKPath, Abbreviations: []string{"IP"}},
		Format:      format,
		out:         out,
	}
}

func TestInspectJSON(t *testing.T) {
	var buf bytes.Buffer
	i := newInspect("json", &buf)
	i.Constants = true
	require.NoError(t, i.inspect(context.Background(), quietLogger()))

	var report struct {
		Resource   string `json:"resource"`
		Attributes []struct {
			Name       string `json:"name"`
			SchemaName string `json:"schemaName"`
			Children   []struct {
				Name string `json:"name"`
			} `json:"children"`
		} `json:"attributes"`
		Constants []struct {
			Name string `json:"name"`
		} `json:"constants"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "PolicyWidget", report.Resource)
	require.NotEmpty(t, report.Attributes)

	byName := make(map[string]int)
	for idx, a := range report.Attributes {
		byName[a.Name] = idx
	}
	require.Contains(t, byName, "Rules")
	rules := report.Attributes[byName["Rules"]]
	assert.Equal(t, "rule", rules.SchemaName)
	assert.NotEmpty(t, rules.Children)

	var constants []string
	for _, k := range report.Constants {
		constants = append(constants, k.Name)
	}
	assert.Contains(t, constants, "PolicyWidget_MODE_ACTIVE")
	assert.Contains(t, constants, "WidgetRule_ACTION_DROP")
}

func TestInspectYAMLAndTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newInspect("yaml", &buf).inspect(context.Background(), quietLogger()))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "PolicyWidget", doc["resource"])
	assert.NotContains(t, doc, "constants", "constants are opt-in")

	buf.Reset()
	require.NoError(t, newInspect("toml", &buf).inspect(context.Background(), quietLogger()))
	tree, err := toml.LoadBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "PolicyWidget", tree.Get("resource"))
}

func TestInspectMissingType(t *testing.T) {
	var buf bytes.Buffer
	i := newInspect("yaml", &buf)
	i.Resource = "PolicyGadget"
	assert.Error(t, i.inspect(context.Background(), quietLogger()))
	assert.Zero(t, buf.Len())
}
