// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package transaction_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/suite"
	"github.com/sygmaprotocol/txtool/chains/btc/transaction"
)

const (
	testTxID         = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
	testScriptPubKey = "76a914751e76e8199196d454941c45d1b3a323f1433bd688ac"
	testRawTx        = "01000000013ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a0000000000ffffffff0150c30000000000001976a914751e76e8199196d454941c45d1b3a323f1433bd688ac00000000"
)

type ParseArgsTestSuite struct {
	suite.Suite
}

func TestRunParseArgsTestSuite(t *testing.T) {
	suite.Run(t, new(ParseArgsTestSuite))
}

func (s *ParseArgsTestSuite) Test_MissingInputsMarker() {
	_, err := transaction.ParseArgs([]string{testTxID, "0", "", "1", "outputs", "1", "00"})

	s.True(errors.Is(err, transaction.ErrUsage))
}

func (s *ParseArgsTestSuite) Test_EmptyArgs() {
	_, err := transaction.ParseArgs([]string{})

	s.True(errors.Is(err, transaction.ErrUsage))
}

func (s *ParseArgsTestSuite) Test_MissingOutputsMarker() {
	_, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "1", "1", "00"})

	s.True(errors.Is(err, transaction.ErrUsage))
}

func (s *ParseArgsTestSuite) Test_NoInputs() {
	_, err := transaction.ParseArgs([]string{"inputs", "outputs", "1", "00"})

	s.True(errors.Is(err, transaction.ErrUsage))
}

func (s *ParseArgsTestSuite) Test_NoOutputs() {
	_, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "1", "outputs"})

	s.True(errors.Is(err, transaction.ErrUsage))
}

func (s *ParseArgsTestSuite) Test_InputsNotMod4() {
	_, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "outputs", "1", "00"})

	s.True(errors.Is(err, transaction.ErrInvalidInputs))
	s.Equal("invalid inputs: must be mod 4 (got 3)", err.Error())
}

func (s *ParseArgsTestSuite) Test_InvalidLockTime() {
	_, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "1", "outputs", "1", "00", "soon"})

	s.NotNil(err)
}

func (s *ParseArgsTestSuite) Test_ShortTxID() {
	_, err := transaction.ParseArgs([]string{"inputs", "abcd", "0", "", "1", "outputs", "1", "00"})

	s.NotNil(err)
}

func (s *ParseArgsTestSuite) Test_InvalidTxIDHex() {
	txID := "zz" + testTxID[2:]
	_, err := transaction.ParseArgs([]string{"inputs", txID, "0", "", "1", "outputs", "1", "00"})

	s.NotNil(err)
}

func (s *ParseArgsTestSuite) Test_InvalidVout() {
	_, err := transaction.ParseArgs([]string{"inputs", testTxID, "4294967296", "", "1", "outputs", "1", "00"})

	s.NotNil(err)
}

func (s *ParseArgsTestSuite) Test_InvalidScriptSig() {
	_, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "0g", "1", "outputs", "1", "00"})

	s.NotNil(err)
}

func (s *ParseArgsTestSuite) Test_InvalidSequence() {
	_, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "-1", "outputs", "1", "00"})

	s.NotNil(err)
}

func (s *ParseArgsTestSuite) Test_InvalidValue() {
	_, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "1", "outputs", "1.5", "00"})

	s.NotNil(err)
}

func (s *ParseArgsTestSuite) Test_ValueOverflowsWireField() {
	_, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "1", "outputs", "9223372036854775808", "00"})

	s.NotNil(err)
}

func (s *ParseArgsTestSuite) Test_InvalidScriptPubKey() {
	_, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "1", "outputs", "1", "0"})

	s.NotNil(err)
}

func (s *ParseArgsTestSuite) Test_TxIDIsReversed() {
	tpl, err := transaction.ParseArgs([]string{"inputs", testTxID, "7", "", "1", "outputs", "1", "00"})
	s.Nil(err)

	displayBytes, _ := hex.DecodeString(testTxID)
	s.Equal(displayBytes[0], tpl.Inputs[0].TxID[chainhash.HashSize-1])
	s.Equal(displayBytes[chainhash.HashSize-1], tpl.Inputs[0].TxID[0])
	s.Equal(testTxID, tpl.Inputs[0].TxID.String())
	s.Equal(uint32(7), tpl.Inputs[0].Vout)
}

func (s *ParseArgsTestSuite) Test_LockTimeDefaultsToZero() {
	tpl, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "1", "outputs", "1", "00"})

	s.Nil(err)
	s.Equal(uint32(0), tpl.LockTime)
	s.Equal(1, len(tpl.Outputs))
}

func (s *ParseArgsTestSuite) Test_TrailingLockTime() {
	tpl, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "1", "outputs", "1", "00", "500"})

	s.Nil(err)
	s.Equal(uint32(500), tpl.LockTime)
	s.Equal(1, len(tpl.Outputs))
}

func (s *ParseArgsTestSuite) Test_ValidTemplate() {
	scriptSig, _ := hex.DecodeString("0102")
	scriptPubKey, _ := hex.DecodeString(testScriptPubKey)
	txID, _ := chainhash.NewHashFromStr(testTxID)

	tpl, err := transaction.ParseArgs([]string{
		"inputs",
		testTxID, "0", "", "4294967295",
		testTxID, "1", "0102", "10",
		"outputs",
		"50000", testScriptPubKey,
		"1", "",
		"42",
	})

	s.Nil(err)
	s.Equal(2, len(tpl.Inputs))
	s.Equal(*txID, tpl.Inputs[0].TxID)
	s.Equal(uint32(0), tpl.Inputs[0].Vout)
	s.Empty(tpl.Inputs[0].ScriptSig)
	s.Equal(uint32(wire.MaxTxInSequenceNum), tpl.Inputs[0].Sequence)
	s.Equal(*txID, tpl.Inputs[1].TxID)
	s.Equal(uint32(1), tpl.Inputs[1].Vout)
	s.Equal(scriptSig, tpl.Inputs[1].ScriptSig)
	s.Equal(uint32(10), tpl.Inputs[1].Sequence)

	s.Equal(2, len(tpl.Outputs))
	s.Equal(int64(50000), tpl.Outputs[0].Value)
	s.Equal(scriptPubKey, tpl.Outputs[0].ScriptPubKey)
	s.Equal(int64(1), tpl.Outputs[1].Value)
	s.Empty(tpl.Outputs[1].ScriptPubKey)
	s.Equal(uint32(42), tpl.LockTime)
}

type MsgTxTestSuite struct {
	suite.Suite
}

func TestRunMsgTxTestSuite(t *testing.T) {
	suite.Run(t, new(MsgTxTestSuite))
}

func (s *MsgTxTestSuite) Test_KnownSerialization() {
	tpl, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "4294967295", "outputs", "50000", testScriptPubKey})
	s.Nil(err)

	raw, err := transaction.Encode(tpl.MsgTx())

	s.Nil(err)
	s.Equal(testRawTx, raw)
}

func (s *MsgTxTestSuite) Test_LockTimeIsSerialized() {
	tpl, err := transaction.ParseArgs([]string{"inputs", testTxID, "0", "", "4294967295", "outputs", "50000", testScriptPubKey, "500"})
	s.Nil(err)

	raw, err := transaction.Encode(tpl.MsgTx())

	s.Nil(err)
	s.Equal(testRawTx[:len(testRawTx)-8]+"f4010000", raw)
}

func (s *MsgTxTestSuite) Test_SerializedLength() {
	args := []string{
		"inputs",
		testTxID, "0", "", "1",
		testTxID, "1", "47304402201111", "2",
		"outputs",
		"50000", testScriptPubKey,
		"1", "6a",
		"2", "",
		"7",
	}
	tpl, err := transaction.ParseArgs(args)
	s.Nil(err)

	raw, err := transaction.Encode(tpl.MsgTx())
	s.Nil(err)

	expected := 4 + wire.VarIntSerializeSize(uint64(len(tpl.Inputs)))
	for _, in := range tpl.Inputs {
		expected += chainhash.HashSize + 4 + wire.VarIntSerializeSize(uint64(len(in.ScriptSig))) + len(in.ScriptSig) + 4
	}
	expected += wire.VarIntSerializeSize(uint64(len(tpl.Outputs)))
	for _, out := range tpl.Outputs {
		expected += 8 + wire.VarIntSerializeSize(uint64(len(out.ScriptPubKey))) + len(out.ScriptPubKey)
	}
	expected += 4

	s.Equal(expected, len(raw)/2)
}
