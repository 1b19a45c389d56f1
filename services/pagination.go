package services

// Per-endpoint pagination bounds, shared with the HTTP layer so the
// response envelope always reflects the values actually served.
const (
	ListingDefaultPageSize      = 10
	ListingMaxPageSize          = 50
	MatchDefaultPageSize        = 20
	MatchMaxPageSize            = 100
	MessageDefaultPageSize      = 50
	MessageMaxPageSize          = 200
	NotificationDefaultPageSize = 20
	NotificationMaxPageSize     = 100
)

// ClampPage bounds offset pagination server-side: page starts at 1 and the
// page size never exceeds the per-endpoint cap, protecting the store from
// unbounded scans.
func ClampPage(page, pageSize, defaultSize, maxSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}
