package livingapps

import (
	"regexp"
	"strings"
)

var (
	recordIDPattern = regexp.MustCompile(`(?i)([a-f0-9]{24})$`)
	refPattern      = regexp.MustCompile(`(?i)/apps/([^/]+)/records/([a-f0-9]{24})$`)
)

// ExtractRecordID returns the record id at the end of a reference URL. Any
// string ending in 24 hex characters matches; anything else reports false.
func ExtractRecordID(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	m := recordIDPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// RecordURL builds the wire form of a reference to a record in an app.
func RecordURL(baseURL, appID, recordID string) string {
	return strings.TrimRight(baseURL, "/") + "/apps/" + appID + "/records/" + recordID
}

// Ref is a typed pointer to a record in a specific app.
type Ref struct {
	AppID    string
	RecordID string
}

// Encode renders the reference as a record URL under baseURL.
func (r Ref) Encode(baseURL string) string {
	return RecordURL(baseURL, r.AppID, r.RecordID)
}

// DecodeRef parses a wire reference. AppID is filled in only when the
// value has the full /apps/{app}/records/{id} shape.
func DecodeRef(s string) (Ref, bool) {
	if m := refPattern.FindStringSubmatch(s); m != nil {
		return Ref{AppID: m[1], RecordID: m[2]}, true
	}
	id, ok := ExtractRecordID(s)
	if !ok {
		return Ref{}, false
	}
	return Ref{RecordID: id}, true
}
