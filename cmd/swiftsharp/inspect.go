package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/emit"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <image>",
	Short: "Decode a persisted image and print its type and method tables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := emit.ReadPayload(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("module %s (%d types, %d methods)\n",
			payload.Module, len(payload.Types), len(payload.Methods))

		// handle N maps to table index N-1; 0 is the invalid sentinel
		name := func(ref uint32) string {
			if ref == 0 || int(ref) > len(payload.Types) {
				return fmt.Sprintf("<invalid:%d>", ref)
			}
			return payload.Types[ref-1].Name
		}

		for i, t := range payload.Types {
			kind := emit.TypeKind(t.Kind)
			switch kind {
			case emit.TypeCore:
				fmt.Printf("  #%-3d core      %s -> %s\n", i+1, identityString(t.Name, t.Arity), t.Platform)
			case emit.TypeDefined:
				fmt.Printf("  #%-3d defined   %s\n", i+1, identityString(t.Name, t.Arity))
			case emit.TypeGenericParam:
				fmt.Printf("  #%-3d param     %s of %s\n", i+1, t.Name, name(t.Owner))
			case emit.TypeConstructed:
				var args []string
				for _, a := range t.Args {
					args = append(args, name(a))
				}
				fmt.Printf("  #%-3d generic   %s<%s>\n", i+1, name(t.Generic), strings.Join(args, ", "))
			default:
				fmt.Printf("  #%-3d invalid\n", i+1)
			}
		}
		for _, m := range payload.Methods {
			var params []string
			for _, p := range m.Params {
				params = append(params, name(p))
			}
			fmt.Printf("  %s.%s(%s) -> %s\n", name(m.Owner), m.Name, strings.Join(params, ", "), name(m.Return))
		}
		return nil
	},
}

func identityString(name string, arity int) string {
	if arity == 0 {
		return name
	}
	return fmt.Sprintf("%s`%d", name, arity)
}
