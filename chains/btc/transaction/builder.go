// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package transaction

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"golang.org/x/exp/slices"
)

const (
	InputsMarker  = "inputs"
	OutputsMarker = "outputs"

	// TxVersion is the version of every transaction assembled by the builder
	TxVersion = 1

	INPUT_ARGS  = 4
	OUTPUT_ARGS = 2
)

var (
	ErrUsage          = errors.New("usage: make-tx inputs [OUTPOINT_TXID OUTPOINT_INDEX SCRIPT_SIG SEQUENCE...] outputs [VALUE SCRIPTPUBKEY...] [LOCKTIME]")
	ErrInvalidInputs  = errors.New("invalid inputs")
	ErrInvalidOutputs = errors.New("invalid outputs")
)

type Input struct {
	// TxID is kept in internal (little-endian) byte order
	TxID      chainhash.Hash
	Vout      uint32
	ScriptSig []byte
	Sequence  uint32
}

type Output struct {
	Value        int64
	ScriptPubKey []byte
}

// Template holds the inputs, outputs and locktime of a transaction
// before it is assembled into a wire message.
type Template struct {
	Inputs   []Input
	Outputs  []Output
	LockTime uint32
}

// ParseArgs parses the flat make-tx argument list:
//
//	inputs [TXID VOUT SCRIPT_SIG SEQUENCE]... outputs [VALUE SCRIPT_PUBKEY]... [LOCKTIME]
//
// Input and output arguments are grouped in fixed strides. An odd number
// of output arguments means the last one is the locktime.
func ParseArgs(args []string) (*Template, error) {
	if len(args) == 0 || args[0] != InputsMarker {
		return nil, ErrUsage
	}

	split := slices.Index(args[1:], OutputsMarker)
	if split < 0 {
		return nil, ErrUsage
	}

	inputArgs := args[1 : split+1]
	outputArgs := args[split+2:]
	if len(inputArgs) == 0 || len(outputArgs) == 0 {
		return nil, ErrUsage
	}
	if len(inputArgs)%INPUT_ARGS != 0 {
		return nil, fmt.Errorf("%w: must be mod %d (got %d)", ErrInvalidInputs, INPUT_ARGS, len(inputArgs))
	}

	tpl := &Template{}
	if len(outputArgs)%OUTPUT_ARGS != 0 {
		lockTime, err := parseUint32(outputArgs[len(outputArgs)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid locktime: %w", err)
		}
		tpl.LockTime = lockTime
		outputArgs = outputArgs[:len(outputArgs)-1]
	}
	if len(outputArgs)%OUTPUT_ARGS != 0 {
		return nil, fmt.Errorf("%w: must be mod %d (got %d)", ErrInvalidOutputs, OUTPUT_ARGS, len(outputArgs))
	}

	tpl.Inputs = make([]Input, 0, len(inputArgs)/INPUT_ARGS)
	for i := 0; i+INPUT_ARGS <= len(inputArgs); i += INPUT_ARGS {
		input, err := parseInput(inputArgs[i : i+INPUT_ARGS])
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i/INPUT_ARGS, err)
		}
		tpl.Inputs = append(tpl.Inputs, input)
	}

	tpl.Outputs = make([]Output, 0, len(outputArgs)/OUTPUT_ARGS)
	for i := 0; i+OUTPUT_ARGS <= len(outputArgs); i += OUTPUT_ARGS {
		output, err := parseOutput(outputArgs[i : i+OUTPUT_ARGS])
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i/OUTPUT_ARGS, err)
		}
		tpl.Outputs = append(tpl.Outputs, output)
	}

	return tpl, nil
}

// MsgTx assembles the template into a wire transaction
func (t *Template) MsgTx() *wire.MsgTx {
	tx := wire.NewMsgTx(TxVersion)
	for _, input := range t.Inputs {
		txID := input.TxID
		txIn := wire.NewTxIn(wire.NewOutPoint(&txID, input.Vout), input.ScriptSig, nil)
		txIn.Sequence = input.Sequence
		tx.AddTxIn(txIn)
	}
	for _, output := range t.Outputs {
		tx.AddTxOut(wire.NewTxOut(output.Value, output.ScriptPubKey))
	}
	tx.LockTime = t.LockTime
	return tx
}

func parseInput(args []string) (Input, error) {
	// txids are given in display order, NewHashFromStr reverses them
	if len(args[0]) != chainhash.MaxHashStringSize {
		return Input{}, fmt.Errorf("txid %q must be %d hex characters", args[0], chainhash.MaxHashStringSize)
	}
	txID, err := chainhash.NewHashFromStr(args[0])
	if err != nil {
		return Input{}, fmt.Errorf("invalid txid %q: %w", args[0], err)
	}
	vout, err := parseUint32(args[1])
	if err != nil {
		return Input{}, fmt.Errorf("invalid outpoint index: %w", err)
	}
	scriptSig, err := hex.DecodeString(args[2])
	if err != nil {
		return Input{}, fmt.Errorf("invalid script sig: %w", err)
	}
	sequence, err := parseUint32(args[3])
	if err != nil {
		return Input{}, fmt.Errorf("invalid sequence: %w", err)
	}

	return Input{
		TxID:      *txID,
		Vout:      vout,
		ScriptSig: scriptSig,
		Sequence:  sequence,
	}, nil
}

func parseOutput(args []string) (Output, error) {
	value, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return Output{}, fmt.Errorf("invalid value: %w", err)
	}
	if value > math.MaxInt64 {
		return Output{}, fmt.Errorf("invalid value: %d exceeds %d", value, int64(math.MaxInt64))
	}
	scriptPubKey, err := hex.DecodeString(args[1])
	if err != nil {
		return Output{}, fmt.Errorf("invalid script pubkey: %w", err)
	}

	return Output{
		Value:        int64(value),
		ScriptPubKey: scriptPubKey,
	}, nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
