package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/lexer"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/source"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Dump the token stream of one source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fset := source.NewFileSet()
		id, err := fset.Load(args[0])
		if err != nil {
			return err
		}
		file := fset.Get(id)
		for _, tok := range lexer.Tokenize(file) {
			pos, _ := fset.Resolve(tok.Span)
			if tok.Kind == token.EOF {
				fmt.Printf("%4d:%-3d eof\n", pos.Line, pos.Col)
				break
			}
			fmt.Printf("%4d:%-3d %-10s %q\n", pos.Line, pos.Col, tok.Kind, tok.Text)
		}
		return nil
	},
}
