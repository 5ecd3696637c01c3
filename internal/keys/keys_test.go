package keys

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	parent := NewNamed(nil, "Profile", "u1")
	k := New(&parent, "Section", 42)

	enc := k.Encode()
	require.NotEmpty(t, enc)
	require.Equal(t, enc, New(&parent, "Section", 42).Encode(), "encoding must be deterministic")

	got, err := Decode(enc)
	require.NoError(t, err)
	require.True(t, got.Equal(k))
	require.Equal(t, "Section", got.Kind)
	require.EqualValues(t, 42, got.ID)
	require.Equal(t, "u1", got.Root().Name)
}

func TestEncode_SpecialCharacters(t *testing.T) {
	t.Parallel()

	parent := NewNamed(nil, "Pro:file", "a/b:c d%e")
	k := New(&parent, "Sec/tion", 1)

	got, err := Decode(k.Encode())
	require.NoError(t, err)
	require.True(t, got.Equal(k))
	require.Equal(t, "a/b:c d%e", got.Parent.Name)
	require.Equal(t, "Pro:file", got.Parent.Kind)
}

// Разные ключи не должны давать одинаковую строку.
func TestEncode_Distinct(t *testing.T) {
	t.Parallel()

	p1 := NewNamed(nil, "Profile", "u1")
	p2 := NewNamed(nil, "Profile", "u2")

	seen := map[string]Key{}
	for _, k := range []Key{
		New(&p1, "Section", 1),
		New(&p1, "Section", 2),
		New(&p2, "Section", 1),
		p1,
		p2,
		New(nil, "Section", 1),
		NewNamed(nil, "Profile", "1"),
	} {
		enc := k.Encode()
		prev, dup := seen[enc]
		require.False(t, dup, "collision between %s and %s", prev, k)
		seen[enc] = k
	}
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	bad := []string{
		"",
		"   ",
		"!!!not-base64!!!",
		base64.RawURLEncoding.EncodeToString([]byte("no-colon")),
		base64.RawURLEncoding.EncodeToString([]byte("Section:i0")),
		base64.RawURLEncoding.EncodeToString([]byte("Section:i-5")),
		base64.RawURLEncoding.EncodeToString([]byte("Section:iabc")),
		base64.RawURLEncoding.EncodeToString([]byte("Section:x1")),
		base64.RawURLEncoding.EncodeToString([]byte("Profile:n")),
		base64.RawURLEncoding.EncodeToString([]byte(":i1")),
	}

	for _, s := range bad {
		_, err := Decode(s)
		require.ErrorIs(t, err, ErrInvalidKey, "input %q", s)
	}
}

// Ключ не разделяет родителя с вызывающим.
func TestNew_CopiesParent(t *testing.T) {
	t.Parallel()

	parent := NewNamed(nil, "Profile", "u1")
	k := New(&parent, "Section", 1)
	parent.Name = "changed"

	require.Equal(t, "u1", k.Parent.Name)
}

func TestKey_StringAndIncomplete(t *testing.T) {
	t.Parallel()

	parent := NewNamed(nil, "Profile", "u1")
	k := New(&parent, "Section", 42)

	require.Equal(t, `Profile("u1")/Section(42)`, k.String())
	require.False(t, k.Incomplete())
	require.True(t, New(&parent, "Section", 0).Incomplete())
}
