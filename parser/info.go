// Package parser turns the three canonical text artifacts inside a log
// folder (info metadata, password dumps, Netscape cookie exports) into the
// normalized record types.
package parser

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/null8bit/log-archive-processor/types"
)

// ParseInfo reads a system-information file line by line, keeping the
// last non-empty value seen for each of "hwid" and "country" (keys
// compared case-insensitively). Lines with no ":" separator are skipped.
// Processing is sequential: the file is small and the only correctness
// requirement is "last line wins in file order", which a single pass
// already gives for free.
func ParseInfo(content []byte) *types.LogInfo {
	info := &types.LogInfo{}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()

		i := strings.Index(line, ":")
		if i < 0 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(line[:i]))
		value := strings.TrimSpace(line[i+1:])
		if value == "" {
			continue
		}

		switch key {
		case "hwid":
			info.Hwid = value
		case "country":
			info.Country = value
		}
	}

	return info
}
