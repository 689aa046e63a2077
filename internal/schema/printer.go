package schema

import (
	"strings"
)

// Print renders the schema as SDL. The output order follows insertion order:
// schema definition, directive definitions, then types.
func Print(s *Schema) string {
	w := NewWriter("  ")

	printSchemaDefinition(w, s)
	for _, def := range s.DirectiveDefinitions.All() {
		w.BlankLine()
		printDirectiveDefinition(w, def)
	}
	for _, def := range s.Types.All() {
		w.BlankLine()
		printType(w, def)
	}

	return strings.TrimLeft(w.String(), "\n")
}

func printSchemaDefinition(w *Writer, s *Schema) {
	roots := []struct{ operation, typeName string }{
		{"query", s.QueryType},
		{"mutation", s.MutationType},
		{"subscription", s.SubscriptionType},
	}
	hasRoots := len(s.RootOperationTypes()) > 0
	if !hasRoots && len(s.Directives) == 0 {
		return
	}

	if !hasRoots {
		w.Write("extend schema")
		printDirectiveLines(w, s.Directives)
		w.Newline()
		return
	}

	w.WriteDescription(s.Description)
	w.Write("schema")
	printDirectiveLines(w, s.Directives)
	if len(s.Directives) > 0 {
		w.Newline()
	} else {
		w.Write(" ")
	}
	w.WriteBlock("{", "}", func() {
		for _, root := range roots {
			if root.typeName != "" {
				w.WriteLinef("%s: %s", root.operation, root.typeName)
			}
		}
	})
}

func printDirectiveDefinition(w *Writer, def *DirectiveDefinition) {
	w.WriteDescription(def.Description)
	w.Write("directive @" + def.Name)
	printArgumentDefinitions(w, def.Arguments)
	if def.Repeatable {
		w.Write(" repeatable")
	}
	locations := make([]string, len(def.Locations))
	for i, loc := range def.Locations {
		locations[i] = string(loc)
	}
	w.WriteLine(" on " + strings.Join(locations, " | "))
}

func printType(w *Writer, def TypeDefinition) {
	w.WriteDescription(def.TypeDescription())

	switch t := def.(type) {
	case *ScalarType:
		w.Write("scalar " + t.Name)
		printDirectiveLines(w, t.Directives)
		w.Newline()
	case *ObjectType:
		w.Write("type " + t.Name)
		printImplements(w, t.Interfaces)
		printDirectiveLines(w, t.Directives)
		printFields(w, t.Directives, t.Fields)
	case *InterfaceType:
		w.Write("interface " + t.Name)
		printImplements(w, t.Interfaces)
		printDirectiveLines(w, t.Directives)
		printFields(w, t.Directives, t.Fields)
	case *UnionType:
		w.Write("union " + t.Name)
		printDirectiveLines(w, t.Directives)
		if len(t.Members) > 0 {
			if len(t.Directives) > 0 {
				w.Newline()
			}
			w.Write(" = " + strings.Join(t.Members, " | "))
		}
		w.Newline()
	case *EnumType:
		w.Write("enum " + t.Name)
		printDirectiveLines(w, t.Directives)
		if len(t.Values) == 0 {
			w.Newline()
			return
		}
		openBlock(w, t.Directives)
		w.Indent()
		for _, v := range t.Values {
			w.WriteDescription(v.Description)
			w.Write(v.Name)
			printDirectivesInline(w, v.Directives)
			w.Newline()
		}
		w.Dedent()
		w.WriteLine("}")
	case *InputObjectType:
		w.Write("input " + t.Name)
		printDirectiveLines(w, t.Directives)
		if len(t.Fields) == 0 {
			w.Newline()
			return
		}
		openBlock(w, t.Directives)
		w.Indent()
		for _, f := range t.Fields {
			w.WriteDescription(f.Description)
			printInputValue(w, f)
			w.Newline()
		}
		w.Dedent()
		w.WriteLine("}")
	}
}

func printImplements(w *Writer, interfaces []string) {
	if len(interfaces) > 0 {
		w.Write(" implements " + strings.Join(interfaces, " & "))
	}
}

// printDirectiveLines writes each directive on its own indented line,
// leaving the cursor after the last one.
func printDirectiveLines(w *Writer, directives DirectiveList) {
	if len(directives) == 0 {
		return
	}
	w.Indent()
	for _, d := range directives {
		w.Newline()
		w.Write(d.String())
	}
	w.Dedent()
}

func printDirectivesInline(w *Writer, directives DirectiveList) {
	for _, d := range directives {
		w.Write(" " + d.String())
	}
}

func openBlock(w *Writer, directives DirectiveList) {
	if len(directives) > 0 {
		w.Newline()
		w.WriteLine("{")
		return
	}
	w.WriteLine(" {")
}

func printFields(w *Writer, directives DirectiveList, fields FieldList) {
	if len(fields) == 0 {
		w.Newline()
		return
	}
	openBlock(w, directives)
	w.Indent()
	for _, f := range fields {
		w.WriteDescription(f.Description)
		w.Write(f.Name)
		printArgumentDefinitions(w, f.Arguments)
		w.Write(": " + f.Type.String())
		printDirectivesInline(w, f.Directives)
		w.Newline()
	}
	w.Dedent()
	w.WriteLine("}")
}

func printArgumentDefinitions(w *Writer, args []*InputValueDefinition) {
	if len(args) == 0 {
		return
	}

	described := false
	for _, a := range args {
		if a.Description != "" {
			described = true
			break
		}
	}

	if !described {
		w.Write("(")
		for i, a := range args {
			if i > 0 {
				w.Write(", ")
			}
			printInputValue(w, a)
		}
		w.Write(")")
		return
	}

	w.WriteLine("(")
	w.Indent()
	for _, a := range args {
		w.WriteDescription(a.Description)
		printInputValue(w, a)
		w.Newline()
	}
	w.Dedent()
	w.Write(")")
}

func printInputValue(w *Writer, v *InputValueDefinition) {
	w.Write(v.Name + ": " + v.Type.String())
	if v.DefaultValue != nil {
		w.Write(" = " + v.DefaultValue.String())
	}
	printDirectivesInline(w, v.Directives)
}
