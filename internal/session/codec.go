package session

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// Codec encodes sessions as deterministic CBOR sealed with secretbox.
type Codec struct {
	key [32]byte
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCodec derives the sealing key from secret.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("session secret is empty")
	}
	c := &Codec{}
	kdf := hkdf.New(sha256.New, secret, nil, []byte("helpdesk-portal session v1"))
	if _, err := io.ReadFull(kdf, c.key[:]); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}

	encOpts := cbor.CoreDetEncOptions()
	encOpts.Time = cbor.TimeRFC3339Nano
	enc, err := encOpts.EncMode()
	if err != nil {
		return nil, err
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, err
	}
	c.enc, c.dec = enc, dec
	return c, nil
}

// Seal returns nonce || box(cbor(s)).
func (c *Codec) Seal(s *Session) ([]byte, error) {
	payload, err := c.enc.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], payload, &nonce, &c.key), nil
}

// Open reverses Seal. Anything that fails authentication is ErrNotFound.
func (c *Codec) Open(sealed []byte) (*Session, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrNotFound
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	payload, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &c.key)
	if !ok {
		return nil, ErrNotFound
	}
	var s Session
	if err := c.dec.Unmarshal(payload, &s); err != nil {
		return nil, ErrNotFound
	}
	return &s, nil
}
