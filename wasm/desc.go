package wasm

import (
	"errors"
	"fmt"

	"github.com/wippyai/sc-scan/wasm/internal/binary"
)

// Descriptor readers keep consuming a descriptor's known shape after a
// semantic error so that the caller's cursor ends on the next entry.

func readLimits(r *binary.Reader, allowed byte) (Limits, byte, error) {
	flags, err := r.ReadByte()
	if err != nil {
		return Limits{}, 0, err
	}
	if flags&^allowed != 0 {
		return Limits{}, flags, fmt.Errorf("%w: 0x%02x", ErrInvalidLimitsFlags, flags)
	}

	memory64 := flags&LimitsMemory64 != 0
	l := Limits{
		Shared:   flags&LimitsShared != 0,
		Memory64: memory64,
	}

	if memory64 {
		l.Min, err = r.ReadU64()
		if err != nil {
			return Limits{}, flags, err
		}
		if flags&LimitsHasMax != 0 {
			maxVal, err := r.ReadU64()
			if err != nil {
				return Limits{}, flags, err
			}
			l.Max = &maxVal
		}
	} else {
		minVal, err := r.ReadU32()
		if err != nil {
			return Limits{}, flags, err
		}
		l.Min = uint64(minVal)
		if flags&LimitsHasMax != 0 {
			maxVal, err := r.ReadU32()
			if err != nil {
				return Limits{}, flags, err
			}
			max64 := uint64(maxVal)
			l.Max = &max64
		}
	}

	if l.Max != nil && l.Min > *l.Max {
		return l, flags, fmt.Errorf("%w: min (%d) exceeds max (%d)", ErrInvalidLimits, l.Min, *l.Max)
	}
	return l, flags, nil
}

func readRefType(r *binary.Reader) (ValType, *RefType, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, nil, err
	}
	vt := ValType(b)
	if vt == ValRefNull || vt == ValRef {
		heapType, err := r.ReadS64()
		if err != nil {
			return 0, nil, err
		}
		return vt, &RefType{Nullable: vt == ValRefNull, HeapType: heapType}, nil
	}
	return vt, nil, nil
}

func readTableType(r *binary.Reader) (TableType, error) {
	elemType, ref, err := readRefType(r)
	if err != nil {
		return TableType{}, err
	}
	limits, _, err := readLimits(r, limitsTableFlags)
	return TableType{ElemType: elemType, RefElemType: ref, Limits: limits}, err
}

func readMemoryType(r *binary.Reader) (MemoryType, error) {
	limits, flags, err := readLimits(r, limitsMemoryFlags)
	if err != nil && !errors.Is(err, ErrInvalidLimits) {
		return MemoryType{}, err
	}
	mt := MemoryType{Limits: limits}
	if flags&LimitsCustomPageSize != 0 {
		log2, perr := r.ReadU32()
		if perr != nil {
			return MemoryType{}, perr
		}
		mt.PageSizeLog2 = &log2
	}
	return mt, err
}

func readGlobalType(r *binary.Reader) (GlobalType, error) {
	vt, ref, err := readRefType(r)
	if err != nil {
		return GlobalType{}, err
	}
	gt := GlobalType{ValType: vt, RefType: ref}

	mut, err := r.ReadByte()
	if err != nil {
		return GlobalType{}, err
	}
	switch mut {
	case 0:
	case 1:
		gt.Mutable = true
	default:
		return gt, fmt.Errorf("%w: 0x%02x", ErrInvalidMutability, mut)
	}
	return gt, nil
}

func readTagType(r *binary.Reader) (TagType, error) {
	attribute, err := r.ReadByte()
	if err != nil {
		return TagType{}, err
	}
	typeIdx, err := r.ReadU32()
	if err != nil {
		return TagType{}, err
	}
	tt := TagType{Attribute: attribute, TypeIdx: typeIdx}
	if attribute != 0 {
		return tt, fmt.Errorf("%w: 0x%02x", ErrInvalidTagAttribute, attribute)
	}
	return tt, nil
}
