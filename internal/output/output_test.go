package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type report struct {
	Profile string `json:"profile" yaml:"profile"`
	Changes int    `json:"changes" yaml:"changes"`
	Markup  string `json:"markup,omitempty" yaml:"markup,omitempty"`
}

func TestNewWriter(t *testing.T) {
	tests := []struct {
		format Format
		want   any
	}{
		{FormatJSON, &JSONWriter{}},
		{FormatJSONL, &JSONLWriter{}},
		{FormatYAML, &YAMLWriter{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(&bytes.Buffer{}, tt.format)
			require.NoError(t, err)
			assert.IsType(t, tt.want, w)
		})
	}

	_, err := NewWriter(&bytes.Buffer{}, Format("xml"))
	assert.ErrorContains(t, err, "unsupported")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, " JSONL ": FormatJSONL, "yml": FormatYAML, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("toml")
	assert.Error(t, err)
	assert.Len(t, Formats(), 3)
}

func TestJSONWriter(t *testing.T) {
	t.Run("single item is written bare", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w := NewJSONWriter(buf, true, "  ")
		require.NoError(t, w.Write(report{Profile: "editorial", Changes: 2}))
		require.NoError(t, w.Close())

		assert.Equal(t, "{\n  \"profile\": \"editorial\",\n  \"changes\": 2\n}\n", buf.String())
	})

	t.Run("several items are written as an array", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w := NewJSONWriter(buf, false, "")
		require.NoError(t, w.Write(report{Profile: "plain"}))
		require.NoError(t, w.WriteAll([]any{report{Profile: "commerce"}}))
		require.NoError(t, w.Flush())

		var got []report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, []report{{Profile: "plain"}, {Profile: "commerce"}}, got)
		assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	})

	t.Run("markup is not escaped", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, Write(buf, FormatJSON, report{Markup: "<p>a & b</p>"}, WithPretty(false)))
		assert.Contains(t, buf.String(), `"markup":"<p>a & b</p>"`)
	})

	t.Run("empty writes an empty array", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, NewJSONWriter(buf, false, "").Close())
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("custom indent", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, Write(buf, FormatJSON, report{}, WithIndent("\t")))
		assert.Contains(t, buf.String(), "\t\"profile\"")
	})
}

func TestJSONLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)
	require.NoError(t, w.WriteAll([]any{report{Profile: "a"}, report{Profile: "b", Changes: 1}}))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"profile":"a","changes":0}`, lines[0])
	assert.Equal(t, `{"profile":"b","changes":1}`, lines[1])
}

func TestYAMLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)
	require.NoError(t, w.Write(report{Profile: "editorial", Changes: 3}))
	require.NoError(t, w.Write(report{Profile: "plain"}))
	require.NoError(t, w.Close())

	var got []report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []report{{Profile: "editorial", Changes: 3}, {Profile: "plain"}}, got)

	buf.Reset()
	require.NoError(t, Write(buf, FormatYAML, report{Profile: "x"}))
	assert.Equal(t, "profile: x\nchanges: 0\n", buf.String())
}
