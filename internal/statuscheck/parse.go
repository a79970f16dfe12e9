package statuscheck

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Application is one application-stat object as returned upstream. Its shape
// is not guaranteed, so it is passed through untouched.
type Application = json.RawMessage

// applicationPaths are probed in order; the first one present decides.
var applicationPaths = []string{"data.applications", "data", "applications"}

// ParseApplications extracts the application list from a status response. If
// the first present candidate is not an array, or the body is not JSON, the
// result is empty.
func ParseApplications(body []byte) []Application {
	out := []Application{}
	if !gjson.ValidBytes(body) {
		return out
	}
	doc := gjson.ParseBytes(body)
	for _, path := range applicationPaths {
		v := doc.Get(path)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if !v.IsArray() {
			return out
		}
		v.ForEach(func(_, item gjson.Result) bool {
			out = append(out, Application(item.Raw))
			return true
		})
		return out
	}
	return out
}
