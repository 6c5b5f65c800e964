package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadNamesFromFile reads one search name per line, skipping blank lines and
// comments starting with #.
func ReadNamesFromFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening names file: %w", err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		names = append(names, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading names file: %w", err)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("no names found in %s", filename)
	}

	return names, nil
}

// SanitizeFilename turns a search name into a safe file name fragment.
// Example: "BUDI SANTOSO, S.H." -> "budi_santoso_s.h."
func SanitizeFilename(name string) string {
	cleaned := strings.ToLower(strings.TrimSpace(name))

	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		",", "",
		"\"", "",
		"'", "",
	)
	cleaned = replacer.Replace(cleaned)

	for strings.Contains(cleaned, "__") {
		cleaned = strings.ReplaceAll(cleaned, "__", "_")
	}

	return strings.Trim(cleaned, "_")
}
