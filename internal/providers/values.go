package providers

import (
	"fmt"
	"strings"

	"github.com/rbright/vtrans/internal/config"
)

// Values is a flat snapshot of provider field values keyed by params key.
type Values map[string]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// ValuesFrom snapshots every field of d from params. List fields are joined
// with commas. Virtual fields start at their default, except the azure area
// which mirrors a region that is not an endpoint URL.
func ValuesFrom(d Descriptor, params config.Params) Values {
	values := make(Values, len(d.Fields))
	for _, f := range d.Fields {
		if f.Virtual {
			values[f.Key] = f.Default
			continue
		}
		values[f.Key] = paramString(params, f.Key)
	}

	if region, ok := values["azure_speech_region"]; ok && region != "" && !strings.HasPrefix(region, "http") {
		values["azure_speech_area"] = region
		values["azure_speech_region"] = ""
	}
	return values
}

// ValuesFromParams snapshots the fields of the named provider.
func ValuesFromParams(name string, params config.Params) (Values, error) {
	d, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", name)
	}
	return ValuesFrom(d, params), nil
}

// Commit writes the non-virtual fields of values into params.
func Commit(d Descriptor, values Values, params *config.Params) error {
	for _, f := range d.Fields {
		if f.Virtual {
			continue
		}
		value, ok := values[f.Key]
		if !ok {
			continue
		}
		if err := params.Set(f.Key, value); err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
	}
	return nil
}

func paramString(params config.Params, key string) string {
	value, ok := params.Get(key)
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprint(v)
	}
}
