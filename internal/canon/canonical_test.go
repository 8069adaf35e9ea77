package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalDeterminism(t *testing.T) {
	obj := Object{
		"name":   String("John Doe"),
		"count":  Int(5),
		"active": Bool(true),
	}

	b1, err := MarshalCanonical(obj)
	require.NoError(t, err)
	b2, err := MarshalCanonical(obj)
	require.NoError(t, err)

	assert.Equal(t, b1, b2, "canonical marshaling must be deterministic")
}

func TestMarshalCanonicalKeyOrder(t *testing.T) {
	obj := Object{
		"b": Int(2),
		"a": Int(1),
		"c": Int(3),
	}

	b, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(b))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	b, err := MarshalCanonical(Object{"html": String("<a href=\"x\">&</a>")})
	require.NoError(t, err)
	assert.Equal(t, `{"html":"<a href=\"x\">&</a>"}`, string(b))
}

func TestMarshalCanonicalControlCharEscaping(t *testing.T) {
	b, err := MarshalCanonical(String("line1\nline2\ttab\x01"))
	require.NoError(t, err)
	assert.Equal(t, `"line1\nline2\ttab"`, string(b))
	assert.NotContains(t, string(b), "\x01")
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// "é" as a precomposed rune vs as "e" + combining acute accent.
	precomposed := String("café")
	decomposed := String("café")

	b1, err := MarshalCanonical(precomposed)
	require.NoError(t, err)
	b2, err := MarshalCanonical(decomposed)
	require.NoError(t, err)

	assert.Equal(t, b1, b2, "NFC normalization must unify equivalent strings")
}

func TestMarshalCanonicalRejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"price": 29.99})
	assert.Error(t, err)

	_, err = MarshalCanonical(3.14)
	assert.Error(t, err)
}

func TestMarshalCanonicalRejectsNull(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"missing": nil})
	assert.Error(t, err)
}

func TestMarshalCanonicalPlainGoTypes(t *testing.T) {
	b, err := MarshalCanonical(map[string]any{
		"name":  "Widget",
		"price": 2999,
		"live":  true,
		"tags":  []any{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"live":true,"name":"Widget","price":2999,"tags":["a","b"]}`, string(b))
}

func TestMarshalCanonicalNestedObjects(t *testing.T) {
	b, err := MarshalCanonical(Object{
		"outer": Object{"z": Int(1), "a": Int(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"outer":{"a":2,"z":1}}`, string(b))
}
