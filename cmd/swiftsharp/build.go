package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/driver"
	"github.com/nagyist/praeclarum-SwiftSharp/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [path...]",
	Short: "Compile Swift sources into an object-model image",
	Long: "Compile Swift sources into an object-model image. With no arguments, " +
		"the project's swiftsharp.toml locates sources and output.",
	RunE: buildExecution,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "image output path (overrides the manifest)")
	buildCmd.Flags().String("module", "", "output module name (overrides the manifest)")
	buildCmd.Flags().String("corelib", "", "core type library file (overrides the manifest)")
	buildCmd.Flags().Int("jobs", 0, "parallel workers (0 = one per CPU)")
	buildCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
}

func buildExecution(cmd *cobra.Command, args []string) error {
	configureColor(cmd)

	output, _ := cmd.Flags().GetString("output")
	moduleName, _ := cmd.Flags().GetString("module")
	corelib, _ := cmd.Flags().GetString("corelib")
	jobs, _ := cmd.Flags().GetInt("jobs")
	uiValue, _ := cmd.Flags().GetString("ui")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	sources := args
	if len(sources) == 0 {
		manifestPath, found := FindManifestHere()
		if !found {
			return errors.New("no sources given and no swiftsharp.toml found")
		}
		manifest, err := project.LoadManifest(manifestPath)
		if err != nil {
			return err
		}
		root := filepath.Dir(manifestPath)
		for _, src := range manifest.Build.Sources {
			sources = append(sources, filepath.Join(root, src))
		}
		if moduleName == "" {
			moduleName = manifest.Package.Name
		}
		if output == "" {
			output = filepath.Join(root, manifest.Build.Output)
		}
		if corelib == "" && manifest.Build.CoreLib != "" {
			corelib = filepath.Join(root, manifest.Build.CoreLib)
		}
	}
	if moduleName == "" {
		moduleName = moduleNameFromSources(sources)
	}
	if output == "" {
		output = moduleName + ".image"
	}

	req := &driver.CompileRequest{
		Sources:        sources,
		ModuleName:     moduleName,
		CoreLib:        corelib,
		Output:         output,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}

	var res *driver.CompileResult
	if shouldUseTUI(uiModeValue) {
		files, listErr := driver.ListSourceFiles(sources)
		if listErr != nil {
			return listErr
		}
		res, err = runCompileWithUI(cmd.Context(), "build "+moduleName, files, req)
	} else {
		res, err = driver.Compile(cmd.Context(), req)
	}

	if res != nil {
		renderBag(os.Stderr, res.FileSet, res.Bag)
	}
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Printf("%s: %d types, %d methods -> %s\n",
			moduleName, res.Image.TypeCount(), res.Image.MethodCount(), output)
	}
	return nil
}

// FindManifestHere looks for swiftsharp.toml starting at the working
// directory.
func FindManifestHere() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return project.FindManifest(wd)
}

func moduleNameFromSources(sources []string) string {
	if len(sources) == 0 {
		return "Main"
	}
	base := filepath.Base(sources[0])
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." {
		return "Main"
	}
	return name
}
