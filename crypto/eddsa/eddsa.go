// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package eddsa

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"
)

const (
	// PrivateKeySize is the size of an RFC 8032 private key (the seed)
	PrivateKeySize = ed25519.SeedSize
	PublicKeySize  = ed25519.PublicKeySize
)

var (
	ErrKeyLength  = errors.New("invalid key length")
	ErrNotOnCurve = errors.New("public key is not a valid curve point")
	ErrSmallOrder = errors.New("public key is a small order point")
)

// GeneratePrivateKey reads a new private key from rand
func GeneratePrivateKey(rand io.Reader) ([]byte, error) {
	_, priv, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, err
	}
	return priv.Seed(), nil
}

// PublicKey derives the public key of a 32 byte private key
func PublicKey(priv []byte) ([]byte, error) {
	if len(priv) != PrivateKeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes (got %d)", ErrKeyLength, PrivateKeySize, len(priv))
	}

	pub := ed25519.NewKeyFromSeed(priv).Public().(ed25519.PublicKey)
	return []byte(pub), nil
}

// CheckPublicKey verifies that pub decompresses to a point on the curve
// that is not in the small order subgroup.
func CheckPublicKey(pub []byte) error {
	if len(pub) != PublicKeySize {
		return fmt.Errorf("%w: public key must be %d bytes (got %d)", ErrKeyLength, PublicKeySize, len(pub))
	}

	point, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotOnCurve, err)
	}

	cleared := new(edwards25519.Point).MultByCofactor(point)
	if cleared.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return ErrSmallOrder
	}
	return nil
}
