package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsControlKey(t *testing.T) {
	tests := []struct {
		key     string
		control bool
	}{
		{"_updatelisting_", true},
		{"_title_", true},
		{"__", true},
		{"video_id", false},
		{"_leadingonly", false},
		{"trailingonly_", false},
		{"_", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.control, IsControlKey(tt.key), "key: %q", tt.key)
	}
}

func TestPartitionTotality(t *testing.T) {
	p := Params{
		"video_id":        "abc",
		"page":            int64(2),
		"_updatelisting_": "true",
		"_cached_":        true,
	}

	callback := p.Callback()
	control := p.Control()

	// Disjoint.
	for key := range callback {
		assert.NotContains(t, control, key)
	}

	// Union covers every decoded key.
	assert.Len(t, callback, 2)
	assert.Len(t, control, 2)
	for key := range p {
		_, inCallback := callback[key]
		_, inControl := control[key]
		assert.True(t, inCallback || inControl, "key %q lost in partition", key)
	}
}

func TestParamsString(t *testing.T) {
	p := Params{"name": "rock", "count": int64(3)}

	assert.Equal(t, "rock", p.String("name"))
	assert.Equal(t, "", p.String("count"))
	assert.Equal(t, "", p.String("missing"))
}

func TestParamsBool(t *testing.T) {
	p := Params{
		"a": true,
		"b": "true",
		"c": "false",
		"d": int64(1),
	}

	assert.True(t, p.Bool("a"))
	assert.True(t, p.Bool("b"))
	assert.False(t, p.Bool("c"))
	assert.False(t, p.Bool("d"))
	assert.False(t, p.Bool("missing"))
}

func TestParamsCopyAndMerge(t *testing.T) {
	p := Params{"a": "1"}
	copied := p.Copy()
	copied["b"] = "2"

	assert.NotContains(t, p, "b")

	p.Merge(Params{"a": "9", "c": "3"})
	assert.Equal(t, "9", p.String("a"))
	assert.Equal(t, "3", p.String("c"))
}
