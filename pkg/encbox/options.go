package encbox

import (
	"errors"

	"github.com/saylorsolutions/encbox/pkg/keys"
)

type config struct {
	tag    keys.Tag
	tagged bool
	source *keys.Source
}

// Opt configures how a container is keyed.
// If any Opt returns an error, then the container is not created and the error is returned.
type Opt = func(*config) error

// WithTag makes the container use the deterministic key for tag.
func WithTag(tag keys.Tag) Opt {
	return func(c *config) error {
		if err := tag.Validate(); err != nil {
			return err
		}
		c.tag = tag
		c.tagged = true
		return nil
	}
}

// WithSource draws the container's random key from src instead of keys.Shared.
func WithSource(src *keys.Source) Opt {
	return func(c *config) error {
		if src == nil {
			return errors.New("nil key source")
		}
		c.source = src
		return nil
	}
}

func newConfig(opts []Opt) (*config, error) {
	c := new(config)
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if !c.tagged && c.source == nil {
		c.source = keys.Shared()
	}
	return c, nil
}

// keying holds either a random key, or the tag its key is computed from.
// The zero keying has no key at all, and screening with it would leave values in plain text.
type keying struct {
	key    keys.Key
	tag    keys.Tag
	tagged bool
	ready  bool
}

func (c *config) keying() keying {
	if c.tagged {
		return keying{tag: c.tag, tagged: true, ready: true}
	}
	return keying{key: c.source.Key(), ready: true}
}

func (k *keying) check() error {
	if !k.ready {
		return ErrNotConstructed
	}
	return nil
}

func (k *keying) current() keys.Key {
	if k.tagged {
		return k.tag.Key()
	}
	return k.key
}

type wordKeying struct {
	key    keys.WordKey
	tag    keys.Tag
	tagged bool
	ready  bool
}

func (c *config) wordKeying() wordKeying {
	if c.tagged {
		return wordKeying{tag: c.tag, tagged: true, ready: true}
	}
	return wordKeying{key: c.source.WordKey(), ready: true}
}

func (k *wordKeying) check() error {
	if !k.ready {
		return ErrNotConstructed
	}
	return nil
}

func (k *wordKeying) current() keys.WordKey {
	if k.tagged {
		return k.tag.WordKey()
	}
	return k.key
}
