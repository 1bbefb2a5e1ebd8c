package passwordhasher

import (
	"fmt"
	"regexp"
	"testing"
	"userapi/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

var hexDigest = regexp.MustCompile("^[0-9a-f]{64}$")

func TestSHA256KnownDigests(t *testing.T) {
	type testcase struct {
		ix       int
		password string
		expected string
	}
	cases := []testcase{
		{ix: 1, password: "", expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{ix: 2, password: "abc", expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{ix: 3, password: "password", expected: "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"},
	}
	h := NewSHA256()
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			require.Equal(t, user.PasswordHash(c.expected), h.HashPassword(user.RawPassword(c.password)))
		})
	}
}

func TestSHA256IsDeterministic(t *testing.T) {
	h := NewSHA256()
	for _, password := range []string{"", " ", "пароль", "   test   "} {
		first := h.HashPassword(user.RawPassword(password))
		require.Equal(t, first, h.HashPassword(user.RawPassword(password)))
		require.Regexp(t, hexDigest, string(first))
	}
}

func TestSHA256DistinguishesWhitespace(t *testing.T) {
	h := NewSHA256()
	require.NotEqual(t, h.HashPassword("test"), h.HashPassword("test "))
}

func TestPBKDF2(t *testing.T) {
	h := NewPBKDF2("pepper", 1000)

	hash := h.HashPassword("password")

	require.Regexp(t, hexDigest, string(hash))
	require.Equal(t, hash, h.HashPassword("password"))
	require.NotEqual(t, hash, h.HashPassword("password "))
	require.NotEqual(t, hash, NewPBKDF2("other pepper", 1000).HashPassword("password"))
	require.NotEqual(t, hash, NewPBKDF2("pepper", 1001).HashPassword("password"))
	require.NotEqual(t, hash, NewSHA256().HashPassword("password"))
}

func TestPBKDF2RejectsNonPositiveIterations(t *testing.T) {
	require.Panics(t, func() { NewPBKDF2("pepper", 0) })
}
