//go:build mage

// Package main contains Mage build targets for cleancore developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// dataDir is the local data directory used by Init and Demo.
const dataDir = "data"

const (
	binDir  = "bin"
	binName = "cleancore"
	cmdPkg  = "./cmd/cleancore"
)

// Init creates the local data directory and a cleancore.yaml pointing at it.
func Init() error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dataDir, err)
	}
	fmt.Println("  ", dataDir)

	const cfgFile = "cleancore.yaml"
	if _, err := os.Stat(cfgFile); err == nil {
		fmt.Println("  ", cfgFile, "(exists)")
		return nil
	}
	cfg := "data_dir: " + dataDir + "\nbackend: json\nmode: exact\nclipboard: true\n"
	if err := os.WriteFile(cfgFile, []byte(cfg), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfgFile, err)
	}
	fmt.Println("  ", cfgFile)
	fmt.Println("Project initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + gitVersion()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// BuildPure compiles the CLI without cgo. Only the pure Go sqlite driver
// ("sqlite") is usable in this binary.
func BuildPure() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName+"-pure")
	env := map[string]string{"CGO_ENABLED": "0"}
	if err := sh.RunWithV(env, "go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Demo builds the CLI and runs the sample invoice rules against the sample dump.
func Demo() error {
	mg.Deps(Build, Init)

	bin := filepath.Join(binDir, binName)
	rules := filepath.Join("testdata", "invoice.rules")
	dump := filepath.Join("testdata", "invoice.txt")
	if err := sh.RunV(bin, "--data-dir", dataDir, "execute", "--rules", rules, "--dump", dump); err != nil {
		return err
	}
	return sh.RunV(bin, "--data-dir", dataDir, "extract", "--dump", dump, "--no-clipboard")
}

func gitVersion() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		return "dev"
	}
	return v
}

// Stats prints Go production and test line counts.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines walks the tree and counts non-blank lines in Go files,
// skipping directories that start with "_" or ".".
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}
