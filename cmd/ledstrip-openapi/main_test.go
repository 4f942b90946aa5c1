package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerateJSON(t *testing.T) {
	data, err := generate("http://192.168.4.1", false)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	for _, p := range []string{"/api/status", "/api/color", "/api/brightness", "/api/power", "/api/v1/version"} {
		assert.Contains(t, paths, p)
	}

	servers := doc["servers"].([]any)
	assert.Equal(t, "http://192.168.4.1", servers[0].(map[string]any)["url"])
}

func TestGenerateYAML(t *testing.T) {
	data, err := generate("", true)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Contains(t, doc, "openapi")
	assert.Contains(t, doc, "paths")
}
