package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type result struct {
	Success bool     `json:"success" yaml:"success"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`
	Items   []string `json:"items,omitempty" yaml:"items,omitempty"`
}

func TestPrint_JSON(t *testing.T) {
	var buf bytes.Buffer
	data := result{Success: true, Message: "Test successful", Items: []string{"item1", "item2"}}

	require.NoError(t, Print(&buf, "json", data))

	var got result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, data, got)
	assert.Contains(t, buf.String(), "\n  \"success\": true")
}

func TestPrint_YAML(t *testing.T) {
	var buf bytes.Buffer
	data := result{Success: true, Items: []string{"item1"}}

	require.NoError(t, Print(&buf, "YML", data))

	var got result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, data, got)
}

func TestPrint_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, "", result{Message: "hi"}))
	assert.Contains(t, buf.String(), "Message:hi")
}

func TestPrint_Unsupported(t *testing.T) {
	err := Print(&bytes.Buffer{}, "xml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format: xml")
}

func TestIndentJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty notices", raw: `{"notices":[]}`, want: "{\n  \"notices\": []\n}\n"},
		{name: "key order preserved", raw: `{"z":1,"a":2}`, want: "{\n  \"z\": 1,\n  \"a\": 2\n}\n"},
		{name: "array", raw: `[1]`, want: "[\n  1\n]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, IndentJSON(&buf, []byte(tt.raw)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestIndentJSON_Invalid(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, IndentJSON(&buf, []byte(`{`)))
	assert.Empty(t, buf.String())
}

func TestFields(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	Fields(&buf, []Field{
		{Key: "login", Value: "alice"},
		{Key: "user_type", Value: "user"},
		{Key: "company", Value: ""},
	})

	out := buf.String()
	assert.Contains(t, out, "Login")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "User Type")
	assert.NotContains(t, out, "Company")
}
