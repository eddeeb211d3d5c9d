package pagination

// CalculateOffset converts a 1-based page number into a row offset.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages is ceil(total/limit), with an empty result counting
// as one page so clients always have a valid last-page number.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
