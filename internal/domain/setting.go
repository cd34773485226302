package domain

import "encoding/json"

// Setting is one entry of the CMS key-value document (banners, logos,
// footer text, transport links). Values are opaque JSON to this service.
type Setting struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}
