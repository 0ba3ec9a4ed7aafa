// Package interfaces documents the abstractions that connect the layers of
// the API and holds their compile-time implementation checks.
//
// # Data Access Interfaces
//
// Controllers in internal/http depend on small store interfaces. The generic
// records.Repository implements all of them for the content tables:
//
//   - ContentStore[T]: list/get/create/save/delete shared by every resource (internal/http/resource.go)
//   - CatalogStore[T]: adds search and name uniqueness for writers, books and the like (internal/http/catalog.go)
//   - KalaamStore: featured lists and per-book pages (internal/http/kalaam.go)
//   - LanguageStore: unique language names (internal/http/languages.go)
//   - SubmissionStore[T], BazmeDuroodStore: public form entries (internal/http/submissions.go)
//   - DashboardStore: counts and recent activity, implemented by database/dashboard (internal/http/dashboard.go)
//   - KalaamGetter: share previews (internal/http/share.go)
//   - Pinger: health checks against *database.Database (internal/http/health.go)
//
// # Infrastructure Interfaces
//
//   - storage.Store: uploaded files on local disk or S3 (internal/storage/client.go)
//   - cache.Cache: dashboard stats in Redis, or no cache at all (internal/cache/cache.go)
//   - TaskQueue, scheduler.Queue: background jobs on the backlite client (internal/tasks)
//   - tasks.SearchKeyRebuilder, tasks.AuditCleaner: work the queues perform
//
// # Adding a New Content Table
//
//  1. Add the entity to internal/entities and to database.Models()
//
//  2. Create a controller embedding resource[T] in internal/http/:
//
//     func NewPoemsController(store CatalogStore[entities.Poem], auditService *audit.Service) *PoemsController
//
//  3. Register routes in router.go with records.NewRepository[entities.Poem](gdb)
//
//  4. Add a compile-time check to checks.go:
//
//     var _ http.CatalogStore[entities.Poem] = (*records.Repository[entities.Poem])(nil)
//
// # Adding a New Upload Backend
//
// Implement storage.Store, select it in entrypoint.NewStore and add:
//
//	var _ storage.Store = (*gcs.Store)(nil)
package interfaces
