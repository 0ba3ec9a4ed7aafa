package http

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/naatacademy/naat-api/internal/audit"
	"github.com/naatacademy/naat-api/internal/search"
	"github.com/naatacademy/naat-api/internal/tasks"
)

const defaultAuditPageSize = 50

// TaskQueue enqueues background tasks and reports on them. tasks.Client
// implements it.
type TaskQueue interface {
	Enqueue(tasks ...backlite.Task) ([]string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// AdminController serves maintenance endpoints under /api/admin.
type AdminController struct {
	queue TaskQueue
	audit *audit.Service
}

func NewAdminController(queue TaskQueue, auditService *audit.Service) *AdminController {
	return &AdminController{queue: queue, audit: auditService}
}

// RebuildSearchKeys handles POST /api/admin/search-keys/rebuild?entity=
// It enqueues a rebuild and returns the task id.
func (ac *AdminController) RebuildSearchKeys(c *gin.Context) {
	if ac.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "tasks_disabled", "task queue is not enabled")
		return
	}

	entity := c.Query("entity")
	if entity != "" && !slices.Contains(search.Entities(), entity) {
		respondBadRequest(c, "unknown entity: "+entity)
		return
	}

	ids, err := ac.queue.Enqueue(tasks.RebuildSearchKeysTask{Entity: entity})
	if err != nil {
		respondInternalError(c, err, "enqueue search key rebuild")
		return
	}

	respondAccepted(c, "search key rebuild enqueued", gin.H{
		"task_id": ids[0],
		"entity":  entity,
	})
}

// TaskStatus handles GET /api/admin/tasks/:id
func (ac *AdminController) TaskStatus(c *gin.Context) {
	if ac.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "tasks_disabled", "task queue is not enabled")
		return
	}

	taskID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := ac.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// AuditEvents handles GET /api/admin/audit?limit=&offset=
func (ac *AdminController) AuditEvents(c *gin.Context) {
	limit, ok := parseCount(c, "limit", defaultAuditPageSize, maxPageSize)
	if !ok {
		return
	}
	offset, ok := parseCount(c, "offset", 0, 0)
	if !ok {
		return
	}

	events, total, err := ac.audit.Events(limit, offset)
	if err != nil {
		respondInternalError(c, err, "audit events")
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(events, total, limit, offset))
}

func (ac *AdminController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/search-keys/rebuild", ac.RebuildSearchKeys)
	group.GET("/tasks/:id", ac.TaskStatus)
	group.GET("/audit", ac.AuditEvents)
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
