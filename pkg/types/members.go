// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Constructors for members. Every member starts public and non-static;
// callers adjust the exported fields before handing the member to a
// TypeBuilder.

// NewField returns a field of type t.
func NewField(name string, t TypeRef) *Field {
	return &Field{Decl: Decl{Name: name, Accessibility: AccessPublic}, Type: t}
}

// NewConst returns a constant field.
func NewConst(name string, t TypeRef, value TypedConstant) *Field {
	f := NewField(name, t)
	f.Modifiers |= ModConst
	f.Constant = &value
	return f
}

// NewEnumMember returns an enum member with the given underlying value.
// Values of enums with an unsigned underlying type are passed as their
// two's complement bit pattern and become uint64 when the enum is built.
func NewEnumMember(name string, value int64) *Field {
	c := Primitive(SpecialInt32, value)
	return &Field{
		Decl:     Decl{Name: name, Accessibility: AccessPublic, Modifiers: ModConst | ModStatic},
		Constant: &c,
	}
}

// NewMethod returns an ordinary method.
func NewMethod(name string, ret TypeRef, params ...Parameter) *Method {
	return &Method{
		Decl:       Decl{Name: name, Accessibility: AccessPublic},
		MethodKind: MethodOrdinary,
		ReturnType: &ret,
		Parameters: params,
	}
}

// NewConstructor returns an instance constructor.
func NewConstructor(params ...Parameter) *Method {
	return &Method{
		Decl:       Decl{Name: ".ctor", Accessibility: AccessPublic},
		MethodKind: MethodConstructor,
		Parameters: params,
	}
}

// NewOperator returns a user-defined operator such as "+" or "==".
func NewOperator(op string, ret TypeRef, params ...Parameter) *Method {
	m := NewMethod("op_"+op, ret, params...)
	m.MethodKind = MethodOperator
	m.Operator = op
	m.Modifiers |= ModStatic
	return m
}

// NewConversion returns an implicit or explicit conversion operator.
func NewConversion(implicit bool, to TypeRef, from Parameter) *Method {
	name := "op_Explicit"
	if implicit {
		name = "op_Implicit"
	}
	m := NewMethod(name, to, from)
	m.MethodKind = MethodConversion
	m.Modifiers |= ModStatic
	if implicit {
		m.Modifiers |= ModImplicit
	}
	return m
}

// NewProperty returns a property with the requested accessors.
func NewProperty(name string, t TypeRef, get, set bool) *Property {
	p := &Property{Decl: Decl{Name: name, Accessibility: AccessPublic}, Type: t}
	if get {
		p.Getter = accessor("get_"+name, MethodPropertyGet)
	}
	if set {
		p.Setter = accessor("set_"+name, MethodPropertySet)
	}
	return p
}

// NewIndexer returns an indexer with the requested accessors.
func NewIndexer(t TypeRef, get, set bool, params ...Parameter) *Property {
	p := NewProperty("this[]", t, get, set)
	p.IsIndexer = true
	p.Parameters = params
	return p
}

// NewEvent returns an event with add and remove accessors.
func NewEvent(name string, t TypeRef) *Event {
	return &Event{
		Decl:    Decl{Name: name, Accessibility: AccessPublic},
		Type:    t,
		Adder:   accessor("add_"+name, MethodEventAdd),
		Remover: accessor("remove_"+name, MethodEventRemove),
	}
}

// accessor returns an accessor that shares its owner's accessibility until
// one is set explicitly.
func accessor(name string, kind MethodKind) *Method {
	return &Method{
		Decl:       Decl{Name: name, Accessibility: AccessNotApplicable, Implicit: true},
		MethodKind: kind,
	}
}

// Param returns a by-value parameter.
func Param(name string, t TypeRef) Parameter {
	return Parameter{Name: name, Type: t}
}

// OptionalParam returns a parameter with an explicit default value.
func OptionalParam(name string, t TypeRef, def TypedConstant) Parameter {
	return Parameter{Name: name, Type: t, HasDefault: true, Default: def}
}
