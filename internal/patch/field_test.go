package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   Field[string] `json:"name"`
	Active Field[bool]   `json:"active"`
	Count  Field[int]    `json:"count"`
}

func TestField_UnmarshalPresence(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantName   Field[string]
		wantActive Field[bool]
		wantCount  Field[int]
	}{
		{
			name:    "empty object leaves everything absent",
			payload: `{}`,
		},
		{
			name:       "zero values are present",
			payload:    `{"name":"","active":false,"count":0}`,
			wantName:   Of(""),
			wantActive: Of(false),
			wantCount:  Of(0),
		},
		{
			name:      "null is absent",
			payload:   `{"name":null,"count":3}`,
			wantName:  Field[string]{},
			wantCount: Of(3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s sample
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &s))
			assert.Equal(t, tt.wantName, s.Name)
			assert.Equal(t, tt.wantActive, s.Active)
			assert.Equal(t, tt.wantCount, s.Count)
		})
	}
}

func TestField_UnmarshalTypeMismatch(t *testing.T) {
	var s sample
	err := json.Unmarshal([]byte(`{"active":"yes"}`), &s)
	assert.Error(t, err)
	assert.False(t, s.Active.Set)
}

func TestField_Marshal(t *testing.T) {
	out, err := json.Marshal(sample{Name: Of("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","active":null,"count":null}`, string(out))
}

func TestApply(t *testing.T) {
	name, active, count := "before", true, 7

	columns := Apply(
		Set("name", &name, Of("")),
		Set("active", &active, Of(false)),
		Set("count", &count, Field[int]{}),
	)

	assert.Equal(t, []string{"name", "active"}, columns)
	assert.Equal(t, "", name)
	assert.False(t, active)
	assert.Equal(t, 7, count)
}

func TestApply_NothingPresent(t *testing.T) {
	name := "keep"
	columns := Apply(Set("name", &name, Field[string]{}))
	assert.Empty(t, columns)
	assert.Equal(t, "keep", name)
}
