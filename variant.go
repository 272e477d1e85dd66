package lumen

import "fmt"

// VariantKind discriminates the payload held by a Variant.
type VariantKind int

const (
	KindNil VariantKind = iota
	KindBool
	KindNumber
	KindString
)

// Variant is a small polymorphic payload threaded between execution cycles,
// most notably the restart value a guest program hands to the next Init.
// The zero Variant is nil.
type Variant struct {
	kind VariantKind
	b    bool
	n    float64
	s    string
}

func Nil() Variant             { return Variant{} }
func Bool(v bool) Variant      { return Variant{kind: KindBool, b: v} }
func Number(v float64) Variant { return Variant{kind: KindNumber, n: v} }
func String(v string) Variant  { return Variant{kind: KindString, s: v} }

func (v Variant) Kind() VariantKind { return v.kind }
func (v Variant) IsNil() bool       { return v.kind == KindNil }

func (v Variant) AsBool() bool      { return v.b }
func (v Variant) AsNumber() float64 { return v.n }
func (v Variant) AsString() string  { return v.s }

// Interface returns the payload as a plain Go value (nil, bool, float64 or
// string), the representation used when a Variant crosses a serialization
// boundary.
func (v Variant) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	default:
		return nil
	}
}

// FromInterface builds a Variant from a deserialized plain Go value.
// Unsupported types collapse to nil.
func FromInterface(val any) Variant {
	switch t := val.(type) {
	case nil:
		return Nil()
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case string:
		return String(t)
	default:
		return Nil()
	}
}

func (v Variant) GoString() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("Bool(%v)", v.b)
	case KindNumber:
		return fmt.Sprintf("Number(%v)", v.n)
	case KindString:
		return fmt.Sprintf("String(%q)", v.s)
	default:
		return "Nil()"
	}
}
