package template

// MergeContexts layers template contexts left to right. Keys from later
// contexts win and nil contexts are skipped. The inputs are not modified.
func MergeContexts(contexts ...map[string]interface{}) map[string]interface{} {
	size := 0
	for _, c := range contexts {
		size += len(c)
	}

	merged := make(map[string]interface{}, size)
	for _, c := range contexts {
		for key, value := range c {
			merged[key] = value
		}
	}
	return merged
}
