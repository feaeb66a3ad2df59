package mediahost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParams_KnownVector(t *testing.T) {
	// sha1("folder=video-uploads&timestamp=1700000000" + "topsecret")
	sig := SignParams(map[string]string{
		"timestamp": "1700000000",
		"folder":    "video-uploads",
	}, "topsecret")

	require.Equal(t, "85bb480a9b4b57a43b063ce9e2a73d3c61bc2f43", sig)
}

func TestSignParams_SingleParam(t *testing.T) {
	sig := SignParams(map[string]string{"timestamp": "1700000000"}, "topsecret")
	require.Equal(t, "8e1a09a828985352cd753768412e637cf52f1734", sig)
}

func TestSignParams_SortsKeys(t *testing.T) {
	// Same params in any map order must produce the same signature.
	a := SignParams(map[string]string{"b": "2", "a": "1", "c": "3"}, "s")
	b := SignParams(map[string]string{"c": "3", "a": "1", "b": "2"}, "s")
	assert.Equal(t, a, b)
}

func TestSignParams_SkipsEmptyValues(t *testing.T) {
	with := SignParams(map[string]string{"timestamp": "1700000000", "folder": ""}, "topsecret")
	without := SignParams(map[string]string{"timestamp": "1700000000"}, "topsecret")
	assert.Equal(t, without, with)
}

func TestSignParams_SecretChangesSignature(t *testing.T) {
	params := map[string]string{"timestamp": "1700000000"}
	assert.NotEqual(t, SignParams(params, "one"), SignParams(params, "two"))
}
