package services

func derefInt(i *int) (int, bool) {
	if i == nil {
		return 0, false
	}
	return *i, true
}

func intPtr(v int) *int {
	return &v
}
