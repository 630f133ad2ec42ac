package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamed_Equality(t *testing.T) {
	assert.Equal(t, Named("physics"), Named("physics"))
	assert.NotEqual(t, Named("physics"), Named("render"))
	assert.True(t, Named("physics") == Named("physics"))
	assert.Equal(t, KindNamed, Named("x").Kind())
	assert.Equal(t, "physics", Named("physics").String())
}

func TestAnonymous_Identity(t *testing.T) {
	a := Anonymous("C")
	b := Anonymous("C")

	assert.False(t, a == b, "two anonymous IDs with the same description must differ")
	assert.True(t, a == a)

	copyOfA := a
	assert.True(t, a == copyOfA)

	assert.False(t, a == Named("C"))
	assert.Equal(t, "C", a.Name())
	assert.Equal(t, KindAnonymous, a.Kind())
	assert.Contains(t, a.String(), "C#")
	assert.NotEqual(t, a.String(), b.String())
}

func TestID_AsMapKey(t *testing.T) {
	anon := Anonymous("x")
	m := map[ID]int{
		Named("a"): 1,
		anon:       2,
	}

	assert.Equal(t, 1, m[Named("a")])
	assert.Equal(t, 2, m[anon])
	_, ok := m[Anonymous("x")]
	assert.False(t, ok)
}

func TestID_Zero(t *testing.T) {
	var id ID
	assert.True(t, id.IsZero())
	assert.Equal(t, "", id.String())
	assert.Equal(t, "none", id.Kind().String())
	assert.False(t, Named("").IsZero(), "an empty name is still a named ID")
}
