package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const scriptExt = ".jsonl"

// collectScripts expands files and directories into script paths. Directories
// are walked for .jsonl files in lexical order.
func collectScripts(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		found, err := walkScripts(root)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func walkScripts(rootPath string) ([]string, error) {
	var files []string
	if err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) == scriptExt {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", rootPath, err)
	}
	return files, nil
}

func loadScript(path string) (Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	return readScript(filepath.Base(path), file)
}

// readScript parses one step per line. Blank lines and lines starting with #
// are skipped.
func readScript(name string, r io.Reader) (Script, error) {
	script := Script{Name: name}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 || text[0] == '#' {
			continue
		}

		var step Step
		if err := json.Unmarshal(text, &step); err != nil {
			return Script{}, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		step.Line = line
		script.Steps = append(script.Steps, step)
	}
	if err := scanner.Err(); err != nil {
		return Script{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return script, nil
}
