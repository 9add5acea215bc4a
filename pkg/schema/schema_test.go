package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scoreSchema = `{
  "type": "object",
  "required": ["score", "level"],
  "properties": {
    "score": {"type": "number", "minimum": 0, "maximum": 100},
    "level": {"enum": ["low", "high"]}
  }
}`

type scored struct {
	Score float64 `json:"score"`
	Level string  `json:"level"`
}

func TestMustCompile(t *testing.T) {
	t.Run("valid schema compiles", func(t *testing.T) {
		assert.NotNil(t, MustCompile("score_test", scoreSchema))
	})

	t.Run("malformed schema panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustCompile("broken_test", `{"type": [`)
		})
	})
}

func TestMarshalValidated(t *testing.T) {
	s := MustCompile("score_roundtrip_test", scoreSchema)

	t.Run("conforming payload passes and returns the bytes", func(t *testing.T) {
		body, err := MarshalValidated(s, scored{Score: 42.5, Level: "high"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"score":42.5,"level":"high"}`, string(body))
	})

	t.Run("out-of-range value is caught before it leaves", func(t *testing.T) {
		_, err := MarshalValidated(s, scored{Score: 140, Level: "high"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema violation")
	})

	t.Run("unknown enum value is caught", func(t *testing.T) {
		_, err := MarshalValidated(s, scored{Score: 10, Level: "mystery"})
		assert.Error(t, err)
	})
}
