package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/ast"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse one source file and dump its declarations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configureColor(cmd)
		maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

		fset, file, bag, err := driver.ParseOne(args[0], maxDiagnostics)
		if err != nil {
			return err
		}
		renderBag(os.Stderr, fset, bag)

		for _, imp := range file.Imports {
			fmt.Printf("import %s\n", imp.Module)
		}
		for _, stmt := range file.Stmts {
			dumpStmt(stmt, 0)
		}
		if bag.HasErrors() {
			return fmt.Errorf("parse errors reported")
		}
		return nil
	},
}

func dumpStmt(stmt ast.Stmt, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s := stmt.(type) {
	case *ast.ClassDecl:
		fmt.Printf("%s%s %s%s%s\n", indent, s.Kind, s.DeclName,
			genericSuffix(s.GenericParams), inheritSuffix(s.Inherits))
		for _, m := range s.Members {
			dumpStmt(m.(ast.Stmt), depth+1)
		}
	case *ast.EnumDecl:
		fmt.Printf("%senum %s%s%s\n", indent, s.DeclName,
			genericSuffix(s.GenericParams), inheritSuffix(s.Inherits))
		for _, c := range s.Cases {
			fmt.Printf("%s  case %s\n", indent, c.CaseName)
		}
		for _, m := range s.Members {
			dumpStmt(m.(ast.Stmt), depth+1)
		}
	case *ast.TypealiasDecl:
		fmt.Printf("%stypealias %s = %s\n", indent, s.DeclName, typeString(&s.Target))
	case *ast.FuncDecl:
		var lists []string
		for _, list := range s.ParamLists {
			var params []string
			for _, p := range list {
				t := "<untyped>"
				if p.Type != nil {
					t = typeString(p.Type)
				}
				params = append(params, fmt.Sprintf("%s: %s", p.LocalName, t))
			}
			lists = append(lists, "("+strings.Join(params, ", ")+")")
		}
		ret := ""
		if s.Return != nil {
			ret = " -> " + typeString(s.Return)
		}
		fmt.Printf("%sfunc %s%s%s\n", indent, s.DeclName, strings.Join(lists, ""), ret)
	case *ast.VarDecl:
		kw := "let"
		if s.Mutable {
			kw = "var"
		}
		t := ""
		if s.Type != nil {
			t = ": " + typeString(s.Type)
		}
		fmt.Printf("%s%s %s%s\n", indent, kw, s.DeclName, t)
	}
}

func genericSuffix(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func inheritSuffix(inherits []ast.TypeExpr) string {
	if len(inherits) == 0 {
		return ""
	}
	var parts []string
	for i := range inherits {
		parts = append(parts, typeString(&inherits[i]))
	}
	return " : " + strings.Join(parts, ", ")
}

func typeString(t *ast.TypeExpr) string {
	name := strings.Join(t.Path, ".")
	if len(t.Args) == 0 {
		return name
	}
	var args []string
	for i := range t.Args {
		args = append(args, typeString(&t.Args[i]))
	}
	return name + "<" + strings.Join(args, ", ") + ">"
}
