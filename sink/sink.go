// Package sink delivers parsed records to a bulk search index.
package sink

import (
	"context"

	"github.com/null8bit/log-archive-processor/types"
)

// CredentialDoc is the wire shape one Credential is indexed as. Country and
// Hwid are nullable: a folder whose info file never set one serializes it
// as a JSON null rather than omitting the key.
type CredentialDoc struct {
	URL      string  `json:"url"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Country  *string `json:"country"`
	Hwid     *string `json:"hwid"`
}

// CookieDoc is the wire shape one Cookie takes inside a CookieBundleDoc.
// It carries none of the bundle's own domain/country/hwid fields.
type CookieDoc struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Path      string `json:"path"`
	Secure    string `json:"secure"`
	HTTPOnly  string `json:"http_only"`
	ExpiresIn string `json:"expires_in"`
}

// CookieBundleDoc is the wire shape one CookieBundle is indexed as.
type CookieBundleDoc struct {
	Domain  string      `json:"domain"`
	Country *string     `json:"country"`
	Hwid    *string     `json:"hwid"`
	Cookies []CookieDoc `json:"cookies"`
}

// CredentialDocFrom converts a Credential into its wire document.
func CredentialDocFrom(c types.Credential) CredentialDoc {
	doc := CredentialDoc{URL: c.URL, Username: c.Username, Password: c.Password}
	doc.Country, doc.Hwid = infoFields(c.Info)
	return doc
}

// CookieBundleDocFrom converts a CookieBundle into its wire document.
func CookieBundleDocFrom(b *types.CookieBundle) CookieBundleDoc {
	doc := CookieBundleDoc{Domain: b.Domain, Cookies: make([]CookieDoc, len(b.Cookies))}
	doc.Country, doc.Hwid = infoFields(b.Info)
	for i, c := range b.Cookies {
		doc.Cookies[i] = CookieDoc{
			Name:      c.Name,
			Value:     c.Value,
			Path:      c.Path,
			Secure:    c.Secure,
			HTTPOnly:  c.HTTPOnly,
			ExpiresIn: c.ExpiresIn,
		}
	}
	return doc
}

// infoFields turns a possibly-nil LogInfo into the nullable country/hwid
// pair the wire format requires: a field LogInfo never populated comes back
// as a nil *string, which json.Marshal renders as null, not an absent key.
func infoFields(info *types.LogInfo) (country, hwid *string) {
	if info == nil {
		return nil, nil
	}
	if info.Country != "" {
		country = &info.Country
	}
	if info.Hwid != "" {
		hwid = &info.Hwid
	}
	return country, hwid
}

// Sink is the bulk-insert capability the orchestrator's two sink workers
// drain their channels into. Implementations own their own storage engine;
// this package only defines the shape a batch of records takes on the way
// in.
type Sink interface {
	// BulkInsertCredentials indexes a batch of credentials. It returns
	// types.SinkUnavailableError if the sink cannot be reached at all.
	BulkInsertCredentials(ctx context.Context, batch []types.Credential) error

	// BulkInsertCookieBundles indexes a batch of cookie bundles. It
	// returns types.SinkUnavailableError if the sink cannot be reached
	// at all.
	BulkInsertCookieBundles(ctx context.Context, batch []*types.CookieBundle) error

	// Close releases any resources held by the sink.
	Close() error
}
