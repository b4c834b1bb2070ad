package utils

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	c := qt.New(t)

	hash, err := HashPassword("secret123")
	c.Assert(err, qt.IsNil)
	c.Assert(hash, qt.Not(qt.Equals), "secret123")

	c.Assert(CheckPasswordHash("secret123", hash), qt.IsTrue)
	c.Assert(CheckPasswordHash("wrong", hash), qt.IsFalse)
	c.Assert(CheckPasswordHash("secret123", "not-a-hash"), qt.IsFalse)
}

func TestHashPasswordSalted(t *testing.T) {
	c := qt.New(t)

	h1, err := HashPassword("secret123")
	c.Assert(err, qt.IsNil)
	h2, err := HashPassword("secret123")
	c.Assert(err, qt.IsNil)
	c.Assert(h1, qt.Not(qt.Equals), h2)
}
