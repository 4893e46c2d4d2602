// internal/params/payload.go
package params

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// stampLayout matches the file stamp the device operators expect:
// minute resolution, UTC, Z-suffixed.
const stampLayout = "20060102T1504Z"

// BuildPayload renders the form body for one stimulus channel.
//
// The set is copied, the per-channel fields are injected, and every
// logical name the mapping lists is projected to its wire field.
// A mapping entry with no value in the set fails the build: the device
// silently mis-measures on incomplete forms, so this must not slip
// through.
//
// The returned filename is what the device will name its result files.
func BuildPayload(set Set, m FieldMapping, stimulus string, responses []string, basename string, now time.Time) (url.Values, string, error) {
	if len(m) == 0 {
		return nil, "", errors.New("params: empty field mapping")
	}

	vals := make(Set, len(set)+3)
	for k, v := range set {
		vals[k] = v
	}

	filename := fmt.Sprintf("%s-ch%s-%s", now.UTC().Format(stampLayout), stimulus, basename)
	vals["filename"] = filename
	vals["stimulus_channel"] = stimulus
	vals["response_channel"] = strings.Join(responses, ",")

	form := make(url.Values, len(m))
	for logical, field := range m {
		v, ok := vals[logical]
		if !ok {
			return nil, "", errors.Errorf("params: no value for logical parameter %q", logical)
		}
		form.Set(field, v)
	}

	return form, filename, nil
}
