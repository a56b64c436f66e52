// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package signer

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

const DefaultHashType = txscript.SigHashAll

var (
	ErrInputIndex   = errors.New("input index out of range")
	ErrWrongNetwork = errors.New("private key is for a different network")
)

// Signer signs legacy pay-to-pubkey-hash style inputs with a single
// secp256k1 key.
type Signer struct {
	key *btcutil.WIF
}

// NewSigner decodes a WIF private key. When params is not nil the key has
// to be encoded for that network.
func NewSigner(wif string, params *chaincfg.Params) (*Signer, error) {
	key, err := btcutil.DecodeWIF(wif)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	if params != nil && !key.IsForNet(params) {
		return nil, fmt.Errorf("%w: expected %s", ErrWrongNetwork, params.Name)
	}

	return &Signer{
		key: key,
	}, nil
}

// PubKey returns the serialized public key, compressed if the WIF says so
func (s *Signer) PubKey() []byte {
	return s.key.SerializePubKey()
}

// Signature computes the legacy signature hash of input idx over pkScript
// and returns the DER encoded low-S signature with the hash type appended.
func (s *Signer) Signature(tx *wire.MsgTx, pkScript []byte, idx int, hashType txscript.SigHashType) ([]byte, error) {
	if idx < 0 || idx >= len(tx.TxIn) {
		return nil, fmt.Errorf("%w: %d, transaction has %d inputs", ErrInputIndex, idx, len(tx.TxIn))
	}

	hash, err := txscript.CalcSignatureHash(pkScript, hashType, tx, idx)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate signature hash: %w", err)
	}

	// RFC6979 nonce, S is normalized to the lower half of the curve order
	sig := ecdsa.Sign(s.key.PrivKey, hash)
	return append(sig.Serialize(), byte(hashType)), nil
}

// Sign replaces the signature script of input idx with <sig> <pubkey>.
// Multisig and witness inputs are not supported.
func (s *Signer) Sign(tx *wire.MsgTx, pkScript []byte, idx int, hashType txscript.SigHashType) error {
	sig, err := s.Signature(tx, pkScript, idx, hashType)
	if err != nil {
		return err
	}

	sigScript, err := txscript.NewScriptBuilder().
		AddData(sig).
		AddData(s.PubKey()).
		Script()
	if err != nil {
		return err
	}

	tx.TxIn[idx].SignatureScript = sigScript
	return nil
}
