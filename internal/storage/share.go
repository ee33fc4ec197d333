package storage

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"wireterm/internal/grid"
)

var ErrBadToken = errors.New("malformed share token")

// shareDoc is the minified wire form: ids, layers and modes are dropped.
type shareDoc struct {
	O []shareObject `json:"o"`
}

type shareObject struct {
	T string       `json:"t"`
	X int          `json:"x"`
	Y int          `json:"y"`
	D grid.Content `json:"d"`
}

// EncodeShare packs objects into a URL-safe token.
func EncodeShare(objects grid.Collection) (string, error) {
	doc := shareDoc{O: make([]shareObject, len(objects))}
	for i, o := range objects {
		doc.O[i] = shareObject{T: o.Type, X: o.X, Y: o.Y, D: o.Data}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

var shareEncodings = []*base64.Encoding{
	base64.RawURLEncoding,
	base64.URLEncoding,
	base64.StdEncoding,
	base64.RawStdEncoding,
}

// DecodeShare unpacks a token from EncodeShare, or the older base64 of a
// percent-encoded payload. Anything up to a '#' is ignored, so a whole
// share link is accepted. Every object gets a fresh id from newID.
func DecodeShare(token string, newID func() string) (grid.Collection, error) {
	token = strings.TrimSpace(token)
	if i := strings.LastIndexByte(token, '#'); i >= 0 {
		token = token[i+1:]
	}
	if token == "" {
		return nil, ErrBadToken
	}
	for _, enc := range shareEncodings {
		raw, err := enc.DecodeString(token)
		if err != nil {
			continue
		}
		if !json.Valid(raw) {
			unescaped, err := url.PathUnescape(string(raw))
			if err != nil {
				continue
			}
			raw = []byte(unescaped)
		}
		var doc shareDoc
		if err := json.Unmarshal(raw, &doc); err != nil || doc.O == nil {
			continue
		}
		out := make(grid.Collection, len(doc.O))
		for i, o := range doc.O {
			out[i] = grid.Object{ID: newID(), Type: o.T, X: o.X, Y: o.Y, Data: o.D.Clone()}
		}
		return out, nil
	}
	return nil, ErrBadToken
}
