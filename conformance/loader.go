package conformance

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TestPath is the suite directory, relative to this package
const TestPath = "testdata"

// LoadedTest represents a test with its source file path
type LoadedTest struct {
	File  string
	Suite *TestSuite
	Test  TestCase
}

// LoadAllTests loads every suite under TestPath
func LoadAllTests() ([]LoadedTest, error) {
	return LoadDir(TestPath)
}

// LoadDir walks dir and loads all test cases from its .yaml files
func LoadDir(dir string) ([]LoadedTest, error) {
	var loaded []LoadedTest

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || (filepath.Ext(path) != ".yaml" && filepath.Ext(path) != ".yml") {
			return nil
		}

		tests, err := LoadFile(path)
		if err != nil {
			return err
		}

		// Relative path for cleaner test names
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			relPath = path
		}
		for _, test := range tests {
			test.File = filepath.ToSlash(relPath)
			loaded = append(loaded, test)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load conformance suites: %w", err)
	}
	return loaded, nil
}

// LoadFile parses a single YAML file and returns all test cases
func LoadFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	suite := &TestSuite{}
	if err := yaml.Unmarshal(data, suite); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	tests := make([]LoadedTest, 0, len(suite.Tests))
	for _, test := range suite.Tests {
		tests = append(tests, LoadedTest{
			File:  path,
			Suite: suite,
			Test:  test,
		})
	}
	return tests, nil
}
