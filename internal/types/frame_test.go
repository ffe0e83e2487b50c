package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_JSONRoundTripPicksShape(t *testing.T) {
	frame := Frame{
		NodeID: "12:34",
		Name:   "quote_large_with_name",
		Kind:   KindQuote,
		Module: &QuoteModule{Content: QuoteContent{Quote: "Energy is eternal delight.", Author: "William Blake"}},
	}

	data, err := json.Marshal(frame)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"quote"`)

	var decoded Frame
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "12:34", decoded.NodeID)

	quote, ok := decoded.Module.(*QuoteModule)
	require.True(t, ok)
	assert.Equal(t, "William Blake", quote.Content.Author)
}

func TestFrame_UnmarshalRejectsUnknownKind(t *testing.T) {
	var f Frame
	err := json.Unmarshal([]byte(`{"node_id":"1:1","name":"x","kind":"banner","module":{}}`), &f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banner")
}

func TestFrame_UnmarshalRequiresModule(t *testing.T) {
	var f Frame
	err := json.Unmarshal([]byte(`{"node_id":"1:1","name":"x","kind":"quote"}`), &f)
	assert.Error(t, err)
}

func TestFrame_UnmarshalRejectsNullModule(t *testing.T) {
	var f Frame
	err := json.Unmarshal([]byte(`{"node_id":"1:1","name":"x","kind":"quote","module":null}`), &f)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "(root)", ve.Errors[0].Field)
}
