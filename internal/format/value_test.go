package format

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualIgnoresDescription(t *testing.T) {
	a := Group(F("SAC", Int(5)), F("SIC", Int(10)))
	b := a.WithDescription("SAC: 5, SIC: 10")
	assert.True(t, a.Equal(b))
	assert.True(t, Float(1.5).WithDescription("x").Equal(Float(1.5)))

	assert.False(t, a.Equal(Group(F("SAC", Int(5)))))
	assert.False(t, Int(1).Equal(Float(1)))
	assert.False(t, List(Int(1)).Equal(List(Int(2))))
}

func TestAccessors(t *testing.T) {
	v := Group(F("RHO", Float(10.5)), F("CODE", Int(0o7654)), F("ID", Text("AFR1")))

	rho, ok := v.Field("RHO")
	require.True(t, ok)
	assert.Equal(t, 10.5, rho)

	code, ok := v.Field("CODE")
	require.True(t, ok)
	assert.Equal(t, float64(0o7654), code)

	_, ok = v.Field("ID")
	assert.False(t, ok)
	_, ok = v.Get("MISSING")
	assert.False(t, ok)
	_, ok = Int(3).Get("RHO")
	assert.False(t, ok)
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{name: "int", value: Int(42), expected: `42`},
		{name: "group keeps order", value: Group(F("SIC", Int(2)), F("SAC", Int(1))), expected: `{"SIC":2,"SAC":1}`},
		{name: "described scalar", value: Float(0.5).WithDescription("half"), expected: `{"value":0.5,"description":"half"}`},
		{name: "described group", value: Group(F("A", Int(1))).WithDescription("d"), expected: `{"A":1,"description":"d"}`},
		{name: "list", value: List(Text("A"), Bytes([]byte{0xAB})), expected: `["A","ab"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}
