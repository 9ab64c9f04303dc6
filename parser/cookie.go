package parser

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/null8bit/log-archive-processor/types"
)

var tabRun = regexp.MustCompile(`\t+`)

// ParseCookies reads a Netscape-format cookies export and groups the
// parsed rows by domain. Each line is split on runs of tabs, trimmed,
// stripped of one leading "." per field, and empty fields are dropped; a
// line is kept only if exactly 7 fields survive that process (domain,
// httpOnly, path, secure, expiresIn, name, value, in that order). Lines
// that don't fit the shape are skipped rather than treated as an error.
//
// It returns types.EmptyError if no line in the file produced a usable
// cookie.
func ParseCookies(content []byte, info *types.LogInfo) (map[string]*types.CookieBundle, error) {
	bundles := make(map[string]*types.CookieBundle)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()

		fields := tabRun.Split(line, -1)
		cleaned := make([]string, 0, len(fields))
		for _, f := range fields {
			f = strings.TrimSpace(f)
			f = strings.TrimPrefix(f, ".")
			if f == "" {
				continue
			}
			cleaned = append(cleaned, f)
		}

		if len(cleaned) != 7 {
			continue
		}

		cookie := types.Cookie{
			Domain:    cleaned[0],
			HTTPOnly:  cleaned[1],
			Path:      cleaned[2],
			Secure:    cleaned[3],
			ExpiresIn: cleaned[4],
			Name:      cleaned[5],
			Value:     cleaned[6],
		}

		bundle, ok := bundles[cookie.Domain]
		if !ok {
			bundle = &types.CookieBundle{Info: info, Domain: cookie.Domain}
			bundles[cookie.Domain] = bundle
		}
		bundle.Cookies = append(bundle.Cookies, cookie)
	}

	if len(bundles) == 0 {
		return nil, types.EmptyError.New("cookie file produced no records")
	}

	return bundles, nil
}
