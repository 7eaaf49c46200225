package loader

// DeepMerge merges src into dst and returns dst. Nested maps are merged
// key by key; any other src value replaces the dst value.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		if cur, ok := dst[k].(map[string]any); ok {
			dst[k] = DeepMerge(cur, sub)
		} else {
			dst[k] = DeepMerge(nil, sub)
		}
	}
	return dst
}

// Clone deep-copies the maps and slices of a configuration tree.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out, _ := cloneValue(src).(map[string]any)
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
