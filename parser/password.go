package parser

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/null8bit/log-archive-processor/types"
)

// ParsePasswords walks a password-dump file with a single (url, username,
// password) cursor. Encountering a "url" line emits a Credential from the
// cursor's *current* values first, provided all three are already
// non-empty, and only then overwrites url with the new value; "username"
// and "password" lines simply overwrite their field. Lines containing "="
// and blank lines are skipped, matching the stealer log dumps this format
// comes from (which interleave "key=value" noise between the url/username/
// password triples).
//
// There is deliberately no flush at end of file: whatever is left in the
// cursor once the last "url" line has fired is discarded. A dump whose
// final record has no following "url" line to trigger its emission never
// produces that last Credential.
func ParsePasswords(content []byte, info *types.LogInfo) []types.Credential {
	var (
		creds          []types.Credential
		url, user, pwd string
	)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.Contains(line, "=") {
			continue
		}

		i := strings.Index(line, ":")
		if i < 0 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(line[:i]))
		value := strings.TrimSpace(line[i+1:])

		switch key {
		case "url":
			if url != "" && user != "" && pwd != "" {
				creds = append(creds, types.Credential{
					URL:      url,
					Username: user,
					Password: pwd,
					Info:     info,
				})
			}
			url = value
		case "username":
			user = value
		case "password":
			pwd = value
		}
	}

	return creds
}
