package config

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"people-monitor-go/pkg/logger"
)

const dotenvFilename = ".env"

type dotenvEntry struct {
	key   string
	value string
}

// loadDotEnv copies entries of the nearest .env file into the process
// environment. Variables that are already set keep their value. A missing
// file is not an error.
func loadDotEnv(log logger.Logger) error {
	path, err := findUpwards(dotenvFilename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	entries, err := readDotEnv(file)
	if err != nil {
		return err
	}

	loaded, skipped := 0, 0
	for _, entry := range entries {
		if _, exists := os.LookupEnv(entry.key); exists {
			skipped++
			continue
		}
		if err := os.Setenv(entry.key, entry.value); err != nil {
			return err
		}
		loaded++
	}

	log.Info("dotenv: loaded variables", "count", loaded, "skipped", skipped, "path", path)
	return nil
}

func findUpwards(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func readDotEnv(r io.Reader) ([]dotenvEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []dotenvEntry
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		entry, ok := parseDotEnvLine(line)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

func parseDotEnvLine(line string) (dotenvEntry, bool) {
	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return dotenvEntry{}, false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[0] == value[len(value)-1] {
		if value[0] == '"' {
			if unquoted, err := strconv.Unquote(value); err == nil {
				return dotenvEntry{key: key, value: unquoted}, true
			}
		}
		return dotenvEntry{key: key, value: value[1 : len(value)-1]}, true
	}

	// a # starts a comment only after whitespace, so values like abc#1 survive
	for i := 1; i < len(value); i++ {
		if value[i] == '#' && (value[i-1] == ' ' || value[i-1] == '\t') {
			value = strings.TrimSpace(value[:i-1])
			break
		}
	}
	return dotenvEntry{key: key, value: value}, true
}
