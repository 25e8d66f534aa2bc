// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sabot

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

// The native conversion layer moves states in and out of Go host values.
//
//   int8                         <-> int8        (likewise int16, int32, int64; int -> int64)
//   uint8..uint64, uint          <-> uint8..uint64
//   bool, Char, float32, float64 <-> bool, char, float, double
//   time.Duration, time.Time     <-> duration, time_pnt
//   uuid.UUID                    <-> uuid
//   []byte, string               <-> blob, str
//   *T                           <-> opt<T> (nil is the unknown optional)
//   []T                          <-> vector<T>
//   [N]T                         <-> (T, T, ...)
//   map[K]struct{}               <-> set<K>
//   map[K]V                      <-> map<K, V>
//   struct                       <-> record, fields named by a `sabot` tag or the field name
//   State                        <-> itself
//
// Tuples may also be read into structs positionally.

const tagName = "sabot"

var (
	stateRType       = reflect.TypeOf(State{})
	durationRType    = reflect.TypeOf(time.Duration(0))
	timeRType        = reflect.TypeOf(time.Time{})
	uuidRType        = reflect.TypeOf(uuid.UUID{})
	charRType        = reflect.TypeOf(Char(0))
	emptyStructRType = reflect.TypeOf(struct{}{})
)

// FromNative builds a state from a host value. A nil interface becomes
// void.
func FromNative(x any) (State, error) {
	if x == nil {
		return NewVoid(), nil
	}
	return fromValue(reflect.ValueOf(x))
}

func fromValue(rv reflect.Value) (State, error) {
	rt := rv.Type()
	switch rt {
	case stateRType:
		return rv.Interface().(State), nil
	case durationRType:
		return NewDuration(time.Duration(rv.Int())), nil
	case timeRType:
		return NewTimePoint(rv.Interface().(time.Time)), nil
	case uuidRType:
		return NewUUID(rv.Interface().(uuid.UUID)), nil
	case charRType:
		return NewChar(Char(rv.Uint())), nil
	}

	switch rt.Kind() {
	case reflect.Int8:
		return NewInt8(int8(rv.Int())), nil
	case reflect.Int16:
		return NewInt16(int16(rv.Int())), nil
	case reflect.Int32:
		return NewInt32(int32(rv.Int())), nil
	case reflect.Int64, reflect.Int:
		return NewInt64(rv.Int()), nil
	case reflect.Uint8:
		return NewUint8(uint8(rv.Uint())), nil
	case reflect.Uint16:
		return NewUint16(uint16(rv.Uint())), nil
	case reflect.Uint32:
		return NewUint32(uint32(rv.Uint())), nil
	case reflect.Uint64, reflect.Uint:
		return NewUint64(rv.Uint()), nil
	case reflect.Bool:
		return NewBool(rv.Bool()), nil
	case reflect.Float32:
		return NewFloat(float32(rv.Float())), nil
	case reflect.Float64:
		return NewDouble(rv.Float()), nil
	case reflect.String:
		return NewStr(rv.String()), nil

	case reflect.Pointer:
		elem, err := TypeOfNative(rt.Elem())
		if err != nil {
			return State{}, err
		}
		if rv.IsNil() {
			return EmptyOpt(elem), nil
		}
		v, err := fromValue(rv.Elem())
		if err != nil {
			return State{}, err
		}
		return NewOpt(v), nil

	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 && rt.Elem() != charRType {
			return NewBlob(rv.Bytes()), nil
		}
		elem, err := TypeOfNative(rt.Elem())
		if err != nil {
			return State{}, err
		}
		vals, err := fromElems(rv)
		if err != nil {
			return State{}, err
		}
		return NewVector(elem, vals...)

	case reflect.Array:
		vals, err := fromElems(rv)
		if err != nil {
			return State{}, err
		}
		return NewTuple(vals...), nil

	case reflect.Map:
		key, err := TypeOfNative(rt.Key())
		if err != nil {
			return State{}, err
		}
		if rt.Elem() == emptyStructRType {
			vals := make([]State, 0, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				k, err := fromValue(iter.Key())
				if err != nil {
					return State{}, err
				}
				vals = append(vals, k)
			}
			return NewSet(key, vals...)
		}
		val, err := TypeOfNative(rt.Elem())
		if err != nil {
			return State{}, err
		}
		entries := make([]MapEntry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, err := fromValue(iter.Key())
			if err != nil {
				return State{}, err
			}
			v, err := fromValue(iter.Value())
			if err != nil {
				return State{}, err
			}
			entries = append(entries, MapEntry{Key: k, Val: v})
		}
		return NewMap(key, val, entries...)

	case reflect.Struct:
		fields := make([]RecordField, 0, rt.NumField())
		for i := 0; i < rt.NumField(); i++ {
			name, ok := fieldName(rt.Field(i))
			if !ok {
				continue
			}
			v, err := fromValue(rv.Field(i))
			if err != nil {
				return State{}, err
			}
			fields = append(fields, RecordField{Name: name, Val: v})
		}
		return NewRecord(fields...), nil

	case reflect.Interface:
		if rv.IsNil() {
			return NewVoid(), nil
		}
		return fromValue(rv.Elem())
	}

	return State{}, ErrUnsupportedNative.New(rt)
}

func fromElems(rv reflect.Value) ([]State, error) {
	vals := make([]State, rv.Len())
	for i := range vals {
		v, err := fromValue(rv.Index(i))
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func fieldName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get(tagName)
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return f.Name, true
}

// TypeOfNative returns the type that FromNative produces for values of
// host type |rt|.
func TypeOfNative(rt reflect.Type) (Type, error) {
	switch rt {
	case durationRType:
		return DurationType, nil
	case timeRType:
		return TimePointType, nil
	case uuidRType:
		return UUIDType, nil
	case charRType:
		return CharType, nil
	}

	switch rt.Kind() {
	case reflect.Int8:
		return Int8Type, nil
	case reflect.Int16:
		return Int16Type, nil
	case reflect.Int32:
		return Int32Type, nil
	case reflect.Int64, reflect.Int:
		return Int64Type, nil
	case reflect.Uint8:
		return Uint8Type, nil
	case reflect.Uint16:
		return Uint16Type, nil
	case reflect.Uint32:
		return Uint32Type, nil
	case reflect.Uint64, reflect.Uint:
		return Uint64Type, nil
	case reflect.Bool:
		return BoolType, nil
	case reflect.Float32:
		return FloatType, nil
	case reflect.Float64:
		return DoubleType, nil
	case reflect.String:
		return StrType, nil
	case reflect.Pointer:
		elem, err := TypeOfNative(rt.Elem())
		if err != nil {
			return Type{}, err
		}
		return OptType(elem), nil
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 && rt.Elem() != charRType {
			return BlobType, nil
		}
		elem, err := TypeOfNative(rt.Elem())
		if err != nil {
			return Type{}, err
		}
		return VectorType(elem), nil
	case reflect.Array:
		elem, err := TypeOfNative(rt.Elem())
		if err != nil {
			return Type{}, err
		}
		elems := make([]Type, rt.Len())
		for i := range elems {
			elems[i] = elem
		}
		return TupleType(elems...), nil
	case reflect.Map:
		key, err := TypeOfNative(rt.Key())
		if err != nil {
			return Type{}, err
		}
		if rt.Elem() == emptyStructRType {
			return SetType(key), nil
		}
		val, err := TypeOfNative(rt.Elem())
		if err != nil {
			return Type{}, err
		}
		return MapType(key, val), nil
	case reflect.Struct:
		fields := make([]Field, 0, rt.NumField())
		for i := 0; i < rt.NumField(); i++ {
			name, ok := fieldName(rt.Field(i))
			if !ok {
				continue
			}
			ft, err := TypeOfNative(rt.Field(i).Type)
			if err != nil {
				return Type{}, err
			}
			fields = append(fields, Field{Name: name, Type: ft})
		}
		return RecordType(fields...), nil
	}
	return Type{}, ErrUnsupportedNative.New(rt)
}

// ToNative populates the host value that |target| points to from |s|. It
// fails with ErrShapeMismatch when the host shape cannot hold the state.
func ToNative(s State, target any) error {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrShapeMismatch.New(s.typ, reflect.TypeOf(target))
	}
	return toValue(s, rv.Elem())
}

func toValue(s State, dst reflect.Value) error {
	rt := dst.Type()
	mismatch := func() error {
		return ErrShapeMismatch.New(s.typ, rt)
	}

	if rt == stateRType {
		dst.Set(reflect.ValueOf(s))
		return nil
	}
	if rt.Kind() == reflect.Interface && rt.NumMethod() == 0 {
		v, err := natural(s)
		if err != nil {
			return err
		}
		if v == nil {
			dst.Set(reflect.Zero(rt))
		} else {
			dst.Set(reflect.ValueOf(v))
		}
		return nil
	}

	switch s.typ.kind {
	case Int8Kind, Int16Kind, Int32Kind, Int64Kind:
		i, _ := s.AsInt()
		switch rt.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if rt == durationRType || dst.OverflowInt(i) {
				return mismatch()
			}
			dst.SetInt(i)
			return nil
		}
	case Uint8Kind, Uint16Kind, Uint32Kind, Uint64Kind:
		switch rt.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if rt == charRType || dst.OverflowUint(s.bits) {
				return mismatch()
			}
			dst.SetUint(s.bits)
			return nil
		}
	case BoolKind:
		if rt.Kind() == reflect.Bool {
			dst.SetBool(s.bits != 0)
			return nil
		}
	case CharKind:
		if rt == charRType {
			dst.SetUint(s.bits)
			return nil
		}
	case FloatKind, DoubleKind:
		f, _ := s.AsFloat()
		switch rt.Kind() {
		case reflect.Float32:
			if s.typ.kind == DoubleKind && dst.OverflowFloat(f) {
				return mismatch()
			}
			dst.SetFloat(f)
			return nil
		case reflect.Float64:
			dst.SetFloat(f)
			return nil
		}
	case DurationKind:
		if rt == durationRType {
			dst.SetInt(int64(s.bits))
			return nil
		}
	case TimePointKind:
		if rt == timeRType {
			t, _ := s.AsTimePoint()
			dst.Set(reflect.ValueOf(t))
			return nil
		}
	case UUIDKind:
		if rt == uuidRType {
			dst.Set(reflect.ValueOf(s.id))
			return nil
		}
	case StrKind, BlobKind:
		switch {
		case rt.Kind() == reflect.String:
			dst.SetString(string(s.bytes))
			return nil
		case rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.Uint8 && rt.Elem() != charRType:
			dst.SetBytes(append([]byte{}, s.bytes...))
			return nil
		}
	case VoidKind:
		if rt == emptyStructRType {
			return nil
		}
	case DescKind:
		return toValue(s.elems[0], dst)
	case OptKind:
		if rt.Kind() != reflect.Pointer {
			return mismatch()
		}
		if len(s.elems) == 0 {
			dst.Set(reflect.Zero(rt))
			return nil
		}
		p := reflect.New(rt.Elem())
		if err := toValue(s.elems[0], p.Elem()); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	case VectorKind, SetKind, TupleKind:
		switch rt.Kind() {
		case reflect.Slice:
			sl := reflect.MakeSlice(rt, len(s.elems), len(s.elems))
			for i, e := range s.elems {
				if err := toValue(e, sl.Index(i)); err != nil {
					return err
				}
			}
			dst.Set(sl)
			return nil
		case reflect.Array:
			if rt.Len() != len(s.elems) {
				return mismatch()
			}
			for i, e := range s.elems {
				if err := toValue(e, dst.Index(i)); err != nil {
					return err
				}
			}
			return nil
		case reflect.Map:
			if s.typ.kind != SetKind || rt.Elem() != emptyStructRType {
				return mismatch()
			}
			m := reflect.MakeMapWithSize(rt, len(s.elems))
			for _, e := range s.elems {
				k := reflect.New(rt.Key()).Elem()
				if err := toValue(e, k); err != nil {
					return err
				}
				m.SetMapIndex(k, reflect.ValueOf(struct{}{}))
			}
			dst.Set(m)
			return nil
		case reflect.Struct:
			if s.typ.kind != TupleKind {
				return mismatch()
			}
			return toStructPositional(s, dst)
		}
	case MapKind:
		if rt.Kind() != reflect.Map {
			return mismatch()
		}
		m := reflect.MakeMapWithSize(rt, len(s.elems)/2)
		for i := 0; i+1 < len(s.elems); i += 2 {
			k := reflect.New(rt.Key()).Elem()
			if err := toValue(s.elems[i], k); err != nil {
				return err
			}
			v := reflect.New(rt.Elem()).Elem()
			if err := toValue(s.elems[i+1], v); err != nil {
				return err
			}
			m.SetMapIndex(k, v)
		}
		dst.Set(m)
		return nil
	case RecordKind:
		if rt.Kind() != reflect.Struct {
			return mismatch()
		}
		return toStructByName(s, dst)
	}
	return mismatch()
}

func toStructByName(s State, dst reflect.Value) error {
	rt := dst.Type()
	byName := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if name, ok := fieldName(rt.Field(i)); ok {
			byName[name] = i
		}
	}
	for i, e := range s.elems {
		fi, ok := byName[s.typ.names[i]]
		if !ok {
			return ErrShapeMismatch.New(s.typ, rt)
		}
		if err := toValue(e, dst.Field(fi)); err != nil {
			return err
		}
	}
	return nil
}

func toStructPositional(s State, dst reflect.Value) error {
	rt := dst.Type()
	idx := make([]int, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if _, ok := fieldName(rt.Field(i)); ok {
			idx = append(idx, i)
		}
	}
	if len(idx) != len(s.elems) {
		return ErrShapeMismatch.New(s.typ, rt)
	}
	for i, e := range s.elems {
		if err := toValue(e, dst.Field(idx[i])); err != nil {
			return err
		}
	}
	return nil
}

// natural returns the default host representation of |s|, used when the
// target is an empty interface.
func natural(s State) (any, error) {
	switch s.typ.kind {
	case Int8Kind, Int16Kind, Int32Kind, Int64Kind:
		return s.AsInt()
	case Uint8Kind, Uint16Kind, Uint32Kind, Uint64Kind:
		return s.bits, nil
	case BoolKind:
		return s.bits != 0, nil
	case CharKind:
		return Char(s.bits), nil
	case FloatKind:
		f, _ := s.AsFloat()
		return float32(f), nil
	case DoubleKind:
		return s.AsFloat()
	case DurationKind:
		return s.AsDuration()
	case TimePointKind:
		return s.AsTimePoint()
	case UUIDKind:
		return s.id, nil
	case StrKind:
		return string(s.bytes), nil
	case BlobKind:
		return append([]byte{}, s.bytes...), nil
	case DescKind:
		return natural(s.elems[0])
	case OptKind:
		if len(s.elems) == 0 {
			return nil, nil
		}
		return natural(s.elems[0])
	case VectorKind, SetKind, TupleKind:
		out := make([]any, len(s.elems))
		for i, e := range s.elems {
			v, err := natural(e)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case MapKind:
		out := make(map[any]any, len(s.elems)/2)
		for i := 0; i+1 < len(s.elems); i += 2 {
			k, err := natural(s.elems[i])
			if err != nil {
				return nil, err
			}
			if k != nil && !reflect.TypeOf(k).Comparable() {
				return nil, ErrShapeMismatch.New(s.typ, "map[any]any")
			}
			v, err := natural(s.elems[i+1])
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case RecordKind:
		out := make(map[string]any, len(s.elems))
		for i, e := range s.elems {
			v, err := natural(e)
			if err != nil {
				return nil, err
			}
			out[s.typ.names[i]] = v
		}
		return out, nil
	case VoidKind:
		return nil, nil
	}
	return nil, ErrShapeMismatch.New(s.typ, "any")
}
