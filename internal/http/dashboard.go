package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/cache"
	"github.com/naatacademy/naat-api/internal/database/dashboard"
)

const (
	recentActivityLimit = 3
	activityDateLayout  = "01/02/2006"
)

var statsCacheKey = cache.Key("dashboard", "stats")

// DashboardStore defines database operations for the dashboard.
type DashboardStore interface {
	Stats() (dashboard.Stats, error)
	Recent(limit int) ([]dashboard.Activity, error)
}

// ActivityItem is one entry of the recent activity lists.
type ActivityItem struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// RecentActivity groups recent items by content kind.
type RecentActivity struct {
	Poetry   []ActivityItem `json:"poetry"`
	Books    []ActivityItem `json:"books"`
	Articles []ActivityItem `json:"articles"`
}

type DashboardController struct {
	store    DashboardStore
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewDashboardController creates the controller. Stats are cached for ttl
// when ttl is positive.
func NewDashboardController(store DashboardStore, c cache.Cache, ttl time.Duration) *DashboardController {
	if c == nil {
		c = cache.Noop{}
	}
	return &DashboardController{store: store, cache: c, cacheTTL: ttl}
}

// GetStats handles GET /api/dashboard/stats
func (dc *DashboardController) GetStats(c *gin.Context) {
	stats, err := dc.stats(c)
	if err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// GetRecent handles GET /api/dashboard/recent
func (dc *DashboardController) GetRecent(c *gin.Context) {
	recent, err := dc.recent()
	if err != nil {
		respondInternalError(c, err, "dashboard recent activity")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recentActivity": recent})
}

// GetDashboard handles GET /api/dashboard
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	stats, err := dc.stats(c)
	if err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}
	recent, err := dc.recent()
	if err != nil {
		respondInternalError(c, err, "dashboard recent activity")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"stats":          stats,
			"recentActivity": recent,
		},
	})
}

// stats reads counts through the cache. Cache failures fall back to the
// database.
func (dc *DashboardController) stats(c *gin.Context) (dashboard.Stats, error) {
	ctx := c.Request.Context()
	if dc.cacheTTL > 0 {
		var cached dashboard.Stats
		hit, err := dc.cache.Get(ctx, statsCacheKey, &cached)
		if err != nil {
			log.Printf("Dashboard cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	stats, err := dc.store.Stats()
	if err != nil {
		return dashboard.Stats{}, err
	}

	if dc.cacheTTL > 0 {
		if err := dc.cache.Set(ctx, statsCacheKey, stats, dc.cacheTTL); err != nil {
			log.Printf("Dashboard cache write failed: %v", err)
		}
	}
	return stats, nil
}

func (dc *DashboardController) recent() (RecentActivity, error) {
	activity, err := dc.store.Recent(recentActivityLimit)
	if err != nil {
		return RecentActivity{}, err
	}

	recent := RecentActivity{
		Poetry:   []ActivityItem{},
		Books:    []ActivityItem{},
		Articles: []ActivityItem{},
	}
	for _, a := range activity {
		item := ActivityItem{
			Title:    a.Title,
			Author:   a.Author,
			Category: a.Category,
			Date:     a.CreatedOn.Format(activityDateLayout),
		}
		switch a.Kind {
		case dashboard.KindPoetry:
			recent.Poetry = append(recent.Poetry, item)
		case dashboard.KindBooks:
			recent.Books = append(recent.Books, item)
		case dashboard.KindArticles:
			recent.Articles = append(recent.Articles, item)
		}
	}
	return recent, nil
}

func (dc *DashboardController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", dc.GetDashboard)
	group.GET("/stats", dc.GetStats)
	group.GET("/recent", dc.GetRecent)
}
