package strcoll

// Get returns the element of the slice at the given index or the empty string.
func Get(idx int, slice []string) string {
	if idx >= 0 && len(slice) > idx {
		return slice[idx]
	}
	return ""
}
