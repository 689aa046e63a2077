package schema

import (
	"strconv"
	"strings"
)

// ValueKind identifies the literal kind held by a Value.
type ValueKind int

const (
	ValueKindString ValueKind = iota
	ValueKindInt
	ValueKindFloat
	ValueKindBoolean
	ValueKindNull
	ValueKindEnum
	ValueKindList
	ValueKindObject
	ValueKindVariable
)

// Value is a GraphQL input literal. Raw holds the scalar text for strings
// (unescaped), numbers, enums and variable names.
type Value struct {
	Kind   ValueKind
	Raw    string
	Bool   bool
	List   []*Value
	Fields []*ObjectField
}

// ObjectField is one entry of an object literal.
type ObjectField struct {
	Name  string
	Value *Value
}

func StringValue(s string) *Value { return &Value{Kind: ValueKindString, Raw: s} }
func EnumValue(s string) *Value   { return &Value{Kind: ValueKindEnum, Raw: s} }
func IntValue(s string) *Value    { return &Value{Kind: ValueKindInt, Raw: s} }
func FloatValue(s string) *Value  { return &Value{Kind: ValueKindFloat, Raw: s} }
func BooleanValue(b bool) *Value  { return &Value{Kind: ValueKindBoolean, Bool: b} }
func NullValue() *Value           { return &Value{Kind: ValueKindNull} }
func ListValue(items ...*Value) *Value {
	return &Value{Kind: ValueKindList, List: items}
}
func ObjectValue(fields ...*ObjectField) *Value {
	return &Value{Kind: ValueKindObject, Fields: fields}
}

// String renders the value as a GraphQL literal.
func (v *Value) String() string {
	if v == nil {
		return "null"
	}
	switch v.Kind {
	case ValueKindString:
		return quoteString(v.Raw)
	case ValueKindBoolean:
		return strconv.FormatBool(v.Bool)
	case ValueKindNull:
		return "null"
	case ValueKindVariable:
		return "$" + v.Raw
	case ValueKindList:
		items := make([]string, len(v.List))
		for i, item := range v.List {
			items[i] = item.String()
		}
		return "[" + strings.Join(items, ", ") + "]"
	case ValueKindObject:
		fields := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = f.Name + ": " + f.Value.String()
		}
		return "{" + strings.Join(fields, ", ") + "}"
	}
	return v.Raw
}

// Equal reports whether both values render to the same literal.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.String() == other.String()
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteString(strconv.FormatInt(int64(r)>>4, 16))
				sb.WriteString(strconv.FormatInt(int64(r)&0xf, 16))
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
