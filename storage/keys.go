package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// Cache key namespace. Collection keys carry every filter dimension that
// affects result membership so distinct filter combinations never collide;
// invalidation works on the prefixes.
const PropertyListPrefix = "properties:list:"

func PropertyKey(id uint) string {
	return fmt.Sprintf("property:%d", id)
}

func PropertyListKey(area, bedrooms string, maxBudget, page, limit int) string {
	a := strings.ToLower(strings.TrimSpace(area))
	if a == "" {
		a = "all"
	}
	if bedrooms == "" {
		bedrooms = "any"
	}
	// Filter values are raw user input; escape them so a crafted value
	// cannot collide with a different filter combination.
	return fmt.Sprintf("%s%s:b=%s:m=%d:p=%d:l=%d",
		PropertyListPrefix, url.QueryEscape(a), url.QueryEscape(bedrooms), maxBudget, page, limit)
}

func MatchListPrefix(userID uint) string {
	return fmt.Sprintf("matches:user:%d:", userID)
}

func MatchListKey(userID uint, page, limit int) string {
	return fmt.Sprintf("%sp=%d:l=%d", MatchListPrefix(userID), page, limit)
}
