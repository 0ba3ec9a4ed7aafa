package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/cache"
	"github.com/naatacademy/naat-api/internal/database"
	"github.com/naatacademy/naat-api/internal/database/dashboard"
	"github.com/naatacademy/naat-api/internal/database/records"
	"github.com/naatacademy/naat-api/internal/entities"
	"github.com/naatacademy/naat-api/internal/http"
	"github.com/naatacademy/naat-api/internal/scheduler"
	"github.com/naatacademy/naat-api/internal/search"
	"github.com/naatacademy/naat-api/internal/storage"
	"github.com/naatacademy/naat-api/internal/storage/local"
	"github.com/naatacademy/naat-api/internal/storage/s3"
	"github.com/naatacademy/naat-api/internal/tasks"
)

// =============================================================================
// Content
// =============================================================================

var _ http.ContentStore[entities.Article] = (*records.Repository[entities.Article])(nil)
var _ http.KalaamStore = (*records.Repository[entities.Kalaam])(nil)
var _ http.KalaamGetter = (*records.Repository[entities.Kalaam])(nil)

// =============================================================================
// Catalog
// =============================================================================

var _ http.CatalogStore[entities.Writer] = (*records.Repository[entities.Writer])(nil)
var _ http.CatalogStore[entities.Book] = (*records.Repository[entities.Book])(nil)
var _ http.CatalogStore[entities.Category] = (*records.Repository[entities.Category])(nil)
var _ http.CatalogStore[entities.Topic] = (*records.Repository[entities.Topic])(nil)
var _ http.CatalogStore[entities.Group] = (*records.Repository[entities.Group])(nil)
var _ http.CatalogStore[entities.Section] = (*records.Repository[entities.Section])(nil)
var _ http.LanguageStore = (*records.Repository[entities.Language])(nil)

// =============================================================================
// Submissions and Dashboard
// =============================================================================

var _ http.BazmeDuroodStore = (*records.Repository[entities.BazmeDurood])(nil)
var _ http.SubmissionStore[entities.MazmoonSubmission] = (*records.Repository[entities.MazmoonSubmission])(nil)
var _ http.SubmissionStore[entities.KalamSubmission] = (*records.Repository[entities.KalamSubmission])(nil)
var _ http.DashboardStore = (*dashboard.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Infrastructure
// =============================================================================

var _ storage.Store = (*local.Store)(nil)
var _ storage.Store = (*s3.Store)(nil)

var _ cache.Cache = (*cache.Redis)(nil)
var _ cache.Cache = cache.Noop{}

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Queue = (*tasks.Client)(nil)
var _ tasks.SearchKeyRebuilder = (*search.Reindexer)(nil)
var _ tasks.AuditCleaner = (*audit.Service)(nil)
