package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Float
		wantErr bool
	}{
		{"number", `12.5`, NewFloat(12.5), false},
		{"numeric string", `"7.25"`, NewFloat(7.25), false},
		{"padded string", `" 3 "`, NewFloat(3), false},
		{"blank string", `""`, Float{}, false},
		{"text", `"abc"`, Float{}, false},
		{"null", `null`, Float{}, false},
		{"zero", `0`, NewFloat(0), false},
		{"boolean", `true`, Float{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Float
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestFloat_Or(t *testing.T) {
	assert.Equal(t, 4.0, NewFloat(4).Or(9))
	assert.Equal(t, 9.0, Float{}.Or(9))
}

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Text
	}{
		{"string", `"dry"`, "dry"},
		{"number", `5551234`, "5551234"},
		{"decimal", `12.50`, "12.50"},
		{"boolean", `false`, "false"},
		{"null", `null`, ""},
		{"object", `{"name":"x"}`, ""},
		{"array", `["a","b"]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txt Text
			require.NoError(t, json.Unmarshal([]byte(tt.input), &txt))
			assert.Equal(t, tt.want, txt)
		})
	}
}

func TestText_Or(t *testing.T) {
	assert.Equal(t, "dry", Text("dry").Or("N/A"))
	assert.Equal(t, "N/A", Text("  ").Or("N/A"))
	assert.Equal(t, "N/A", Text("").Or("N/A"))
}

func TestFlag_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  Flag
	}{
		{`true`, true},
		{`false`, false},
		{`"true"`, true},
		{`1`, true},
		{`0`, false},
		{`"yes"`, false},
		{`null`, false},
		{`{"x":1}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f := Flag(true)
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.want, f)
		})
	}
}
