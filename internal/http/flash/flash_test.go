package flash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wolfly.in/app/pkg/view"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := NewCodec([]byte("secret"), "flash", false)

	v, err := c.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Order cancelled successfully."})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashSuccess, f.Kind)
	assert.Equal(t, "Order cancelled successfully.", f.Message)
}

func TestDecodeRejectsTamperedPayload(t *testing.T) {
	c := NewCodec([]byte("secret"), "flash", false)

	v, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "hello"})
	require.NoError(t, err)

	_, err = c.Decode("x" + v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	a := NewCodec([]byte("secret-a"), "flash", false)
	b := NewCodec([]byte("secret-b"), "flash", false)

	v, err := a.Encode(view.Flash{Kind: view.FlashInfo, Message: "hello"})
	require.NoError(t, err)

	_, err = b.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	c := NewCodec([]byte("secret"), "flash", false)

	for _, v := range []string{"", "nodot", "a.b.c", "!!.!!"} {
		_, err := c.Decode(v)
		assert.Error(t, err, v)
	}
}
