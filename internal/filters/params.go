package filters

// Params represents decode parameters from a stream's DecodeParms
// dictionary. Values are int, float64, bool or string.
type Params map[string]interface{}

// Int returns an integer parameter, or defaultValue when it is missing or
// not a number.
func (p Params) Int(key string, defaultValue int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultValue
	}
}

// Bool returns a boolean parameter, or defaultValue when it is missing or
// not a boolean.
func (p Params) Bool(key string, defaultValue bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return defaultValue
}
