package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type secretScore struct {
	value uint64
}

func TestTag_Validate(t *testing.T) {
	assert.NoError(t, Tag("player.health").Validate())
	assert.ErrorIs(t, Tag("").Validate(), ErrEmptyTag)
	assert.ErrorIs(t, Tag(" \t").Validate(), ErrEmptyTag)
}

func TestTag_Key(t *testing.T) {
	a := Tag("player.health").Key()
	assert.Equal(t, a, Tag("player.health").Key(), "Same tag should produce the same key")
	assert.NotEqual(t, a, Tag("player.ammo").Key(), "Different tags should produce different keys")
	assert.NotEqual(t, Key{}, a)
}

func TestTag_WordKey(t *testing.T) {
	k := Tag("player.health").Key()
	w := Tag("player.health").WordKey()
	for i := range w {
		assert.Equal(t, k[i]^k[i+WordKeySize], w[i])
	}
	assert.NotEqual(t, w, Tag("player.ammo").WordKey())
}

func TestTypeTag(t *testing.T) {
	assert.Equal(t, Tag("github.com/saylorsolutions/encbox/pkg/keys.secretScore"), TypeTag[secretScore]())
	assert.Equal(t, Tag("[4]int32"), TypeTag[[4]int32]())
	assert.Equal(t, TypeTag[secretScore]().Key(), TypeTag[secretScore]().Key())
	assert.NotEqual(t, TypeTag[secretScore]().Key(), TypeTag[[4]int32]().Key())
}

func localTag() Tag {
	type counter uint32
	return TypeTag[counter]()
}

func otherLocalTag() Tag {
	type counter int64
	return TypeTag[counter]()
}

func TestTypeTag_LocalTypesCollide(t *testing.T) {
	assert.Equal(t, localTag(), otherLocalTag())
	assert.Equal(t, localTag().Key(), otherLocalTag().Key())
}
