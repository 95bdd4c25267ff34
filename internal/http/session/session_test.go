package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodec() *Codec {
	return NewCodec([]byte("test-secret"), "primini_session", false, time.Hour)
}

func TestCodec_RoundTrip(t *testing.T) {
	c := testCodec()
	s := New("tok-123", "admin@primini.ma", "Admin", true, time.Hour)

	v, err := c.Encode(s)
	require.NoError(t, err)

	got, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "tok-123", got.Token)
	assert.Equal(t, "admin@primini.ma", got.Email)
	assert.True(t, got.IsStaff)
}

func TestCodec_RejectsTamperedValue(t *testing.T) {
	c := testCodec()
	v, err := c.Encode(New("tok", "a@b.ma", "A", false, time.Hour))
	require.NoError(t, err)

	payload, sig, ok := strings.Cut(v, ".")
	require.True(t, ok)

	// Flip a character in the payload; the signature no longer matches.
	flipped := "A" + payload[1:]
	if flipped == payload {
		flipped = "B" + payload[1:]
	}
	_, err = c.Decode(flipped + "." + sig)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodec_RejectsWrongSecret(t *testing.T) {
	v, err := testCodec().Encode(New("tok", "a@b.ma", "A", false, time.Hour))
	require.NoError(t, err)

	other := NewCodec([]byte("another-secret"), "primini_session", false, time.Hour)
	_, err = other.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodec_RejectsExpiredSession(t *testing.T) {
	c := testCodec()
	v, err := c.Encode(New("tok", "a@b.ma", "A", false, -time.Minute))
	require.NoError(t, err)

	_, err = c.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodec_RejectsEmptyToken(t *testing.T) {
	c := testCodec()
	s := New("", "a@b.ma", "A", false, time.Hour)

	v, err := c.Encode(s)
	require.NoError(t, err)

	_, err = c.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodec_RejectsGarbage(t *testing.T) {
	c := testCodec()
	for _, v := range []string{"", "no-dot", "a.b.c", "!!!.###"} {
		_, err := c.Decode(v)
		assert.Error(t, err, "value %q", v)
	}
}

func TestNew_DistinctIDs(t *testing.T) {
	a := New("t", "a@b.ma", "A", false, time.Hour)
	b := New("t", "a@b.ma", "A", false, time.Hour)
	assert.NotEqual(t, a.ID, b.ID)
}
