package flash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primini.ma/app/pkg/view"
)

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec([]byte("secret"), "primini_flash", false)

	v, err := c.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Connexion réussie."})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashSuccess, f.Kind)
	assert.Equal(t, "Connexion réussie.", f.Message)
}

func TestCodec_RejectsForgedSignature(t *testing.T) {
	c := NewCodec([]byte("secret"), "primini_flash", false)
	v, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "ok"})
	require.NoError(t, err)

	other := NewCodec([]byte("other"), "primini_flash", false)
	_, err = other.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodec_RejectsEmptyMessage(t *testing.T) {
	c := NewCodec([]byte("secret"), "primini_flash", false)
	v, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "   "})
	require.NoError(t, err)

	_, err = c.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}
