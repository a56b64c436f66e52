// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package transaction

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"
	"go.uber.org/zap/buffer"
)

// Encode serializes the transaction and returns it hex encoded
func Encode(tx *wire.MsgTx) (string, error) {
	var buf buffer.Buffer
	err := tx.Serialize(&buf)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf.Bytes()), nil
}

// Decode parses a hex encoded raw transaction. The whole input has to be
// consumed by the transaction.
func Decode(rawTx string) (*wire.MsgTx, error) {
	txBytes, err := hex.DecodeString(rawTx)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction hex: %w", err)
	}

	r := bytes.NewReader(txBytes)
	tx := &wire.MsgTx{}
	err = tx.Deserialize(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to deserialize transaction")
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("failed to deserialize transaction: %d trailing bytes", r.Len())
	}
	return tx, nil
}

// DecodeResult describes the transaction in the same shape bitcoind's
// decoderawtransaction does. Addresses are rendered for the given network.
func DecodeResult(tx *wire.MsgTx, params *chaincfg.Params) *btcjson.TxRawDecodeResult {
	return &btcjson.TxRawDecodeResult{
		Txid:     tx.TxHash().String(),
		Version:  tx.Version,
		Locktime: tx.LockTime,
		Vin:      vinList(tx),
		Vout:     voutList(tx, params),
	}
}

func vinList(tx *wire.MsgTx) []btcjson.Vin {
	vinList := make([]btcjson.Vin, len(tx.TxIn))

	if isCoinBase(tx) {
		txIn := tx.TxIn[0]
		vinList[0].Coinbase = hex.EncodeToString(txIn.SignatureScript)
		vinList[0].Sequence = txIn.Sequence
		vinList[0].Witness = witnessToHex(txIn.Witness)
		return vinList
	}

	for i, txIn := range tx.TxIn {
		// the disassembly is best effort, a failure leaves an [error] marker
		disbuf, _ := txscript.DisasmString(txIn.SignatureScript)

		vinEntry := &vinList[i]
		vinEntry.Txid = txIn.PreviousOutPoint.Hash.String()
		vinEntry.Vout = txIn.PreviousOutPoint.Index
		vinEntry.Sequence = txIn.Sequence
		vinEntry.ScriptSig = &btcjson.ScriptSig{
			Asm: disbuf,
			Hex: hex.EncodeToString(txIn.SignatureScript),
		}
		if tx.HasWitness() {
			vinEntry.Witness = witnessToHex(txIn.Witness)
		}
	}
	return vinList
}

func voutList(tx *wire.MsgTx, params *chaincfg.Params) []btcjson.Vout {
	voutList := make([]btcjson.Vout, 0, len(tx.TxOut))
	for i, v := range tx.TxOut {
		disbuf, _ := txscript.DisasmString(v.PkScript)

		// non-standard scripts yield no addresses and are reported as such
		scriptClass, addrs, reqSigs, _ := txscript.ExtractPkScriptAddrs(v.PkScript, params)

		var vout btcjson.Vout
		vout.N = uint32(i)
		vout.Value = btcutil.Amount(v.Value).ToBTC()
		vout.ScriptPubKey.Asm = disbuf
		vout.ScriptPubKey.Hex = hex.EncodeToString(v.PkScript)
		vout.ScriptPubKey.Type = scriptClass.String()
		vout.ScriptPubKey.ReqSigs = int32(reqSigs)
		if len(addrs) == 1 {
			vout.ScriptPubKey.Address = addrs[0].EncodeAddress()
		}

		voutList = append(voutList, vout)
	}
	return voutList
}

func witnessToHex(witness wire.TxWitness) []string {
	if len(witness) == 0 {
		return nil
	}
	result := make([]string, 0, len(witness))
	for _, item := range witness {
		result = append(result, hex.EncodeToString(item))
	}
	return result
}

func isCoinBase(tx *wire.MsgTx) bool {
	if len(tx.TxIn) != 1 {
		return false
	}
	prevOut := &tx.TxIn[0].PreviousOutPoint
	return prevOut.Index == wire.MaxPrevOutIndex && prevOut.Hash == (chainhash.Hash{})
}
