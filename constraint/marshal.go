package constraint

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/symflow/symflow"
	"github.com/symflow/symflow/logger"
	"github.com/symflow/symflow/symbolic"
)

// System is a flattened constraint system as handed to a downstream
// solver: the entry function it was instantiated from and the ordered
// constraint list, plus a version header checked on deserialization.
type System struct {
	SymflowVersion string
	Entry          string
	Constraints    []Constraint
}

// NewSystem wraps a flattened constraint list for serialization.
func NewSystem(entry string, constraints []Constraint) System {
	return System{
		SymflowVersion: symflow.Version.String(),
		Entry:          entry,
		Constraints:    constraints,
	}
}

// ToBytes serializes the system to CBOR.
//
// Call-stack frames are encoded by value; sharing between constraints
// instantiated from one call site is not preserved across a round trip.
func (system *System) ToBytes() ([]byte, error) {
	ts := getTagSet()
	em, err := cbor.CoreDetEncOptions().EncModeWithTags(ts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := em.NewEncoder(&buf).Encode(system); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes deserializes the system from a byte slice and returns the
// number of bytes read.
func (system *System) FromBytes(data []byte) (int, error) {
	ts := getTagSet()
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecModeWithTags(ts)
	if err != nil {
		return 0, err
	}

	decoder := dm.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(system); err != nil {
		return 0, err
	}

	if err := system.CheckSerializationHeader(); err != nil {
		return 0, err
	}

	return decoder.NumBytesRead(), nil
}

// CheckSerializationHeader parses the version header.
//
// This is meant to be used at the deserialization step, and will error for
// illegal values.
func (system *System) CheckSerializationHeader() error {
	binaryVersion := symflow.Version
	objectVersion, err := semver.Parse(system.SymflowVersion)
	if err != nil {
		return fmt.Errorf("when parsing symflow version: %w", err)
	}

	if binaryVersion.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", binaryVersion.String()).Str("object", objectVersion.String()).Msg("symflow version (binary) mismatch with constraint system. there are no guarantees on compatibility")
	}

	return nil
}

func getTagSet() cbor.TagSet {
	ts := cbor.NewTagSet()
	// https://www.iana.org/assignments/cbor-tags/cbor-tags.xhtml
	// 65536-15309735 Unassigned
	tagNum := uint64(5309735)
	addType := func(t reflect.Type) {
		if err := ts.Add(
			cbor.TagOptions{EncTag: cbor.EncTagRequired, DecTag: cbor.DecTagRequired},
			t,
			tagNum,
		); err != nil {
			panic(err)
		}
		tagNum++
	}

	// constraint shapes
	addType(reflect.TypeOf(Predicate{}))
	addType(reflect.TypeOf(Call{}))

	// expression shapes
	addType(reflect.TypeOf(symbolic.Variable{}))
	addType(reflect.TypeOf(symbolic.Const{}))
	addType(reflect.TypeOf(symbolic.Binary{}))

	// boolean expression shapes
	addType(reflect.TypeOf(symbolic.BoolVar{}))
	addType(reflect.TypeOf(symbolic.BoolConst{}))
	addType(reflect.TypeOf(symbolic.Not{}))
	addType(reflect.TypeOf(symbolic.And{}))
	addType(reflect.TypeOf(symbolic.Or{}))
	addType(reflect.TypeOf(symbolic.Cmp{}))
	addType(reflect.TypeOf(symbolic.BoolEq{}))

	return ts
}
