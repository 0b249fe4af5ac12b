package cache

import (
	"fmt"
	"time"
)

const (
	SoupKeyPrefix      = "soup:%d"
	SoupStarsKeyPrefix = "soup:%d:stars"
)

// Key families used as metric labels.
const (
	FamilySoup      = "soup"
	FamilySoupStars = "soup_stars"
)

const (
	SoupTTL      = 10 * time.Minute
	SoupStarsTTL = 2 * time.Minute
)

func SoupKey(soupID uint) string {
	return fmt.Sprintf(SoupKeyPrefix, soupID)
}

func SoupStarsKey(soupID uint) string {
	return fmt.Sprintf(SoupStarsKeyPrefix, soupID)
}
