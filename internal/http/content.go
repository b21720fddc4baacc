package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suilan/musedeck/internal/audit"
	"github.com/suilan/musedeck/internal/classifier"
	"github.com/suilan/musedeck/internal/enrichment"
	"github.com/suilan/musedeck/internal/entities"
	"github.com/suilan/musedeck/internal/tasks"
)

// ContentStore defines database operations for collected content.
type ContentStore interface {
	Create(c *entities.CollectedContent) error
	GetByID(id uint) (*entities.CollectedContent, error)
	ListRecent(limit int) ([]entities.CollectedContent, error)
}

type ContentController struct {
	store      ContentStore
	pipeline   tasks.Enricher
	taskClient *tasks.Client
	auditor    *audit.Auditor
}

func NewContentController(store ContentStore, pipeline tasks.Enricher, taskClient *tasks.Client, auditor *audit.Auditor) *ContentController {
	return &ContentController{
		store:      store,
		pipeline:   pipeline,
		taskClient: taskClient,
		auditor:    auditor,
	}
}

// SubmitContentRequest is the request body for collecting content.
type SubmitContentRequest struct {
	ContentType     string `json:"content_type" binding:"required"`
	OriginalContent string `json:"original_content" binding:"required"`
}

// SubmitContent stores a raw submission with the AI fields empty and queues
// it for classification. The enqueue is best-effort: a failed enqueue does
// not fail the submission, enrichment can be re-triggered per row.
// POST /api/content
func (cc *ContentController) SubmitContent(c *gin.Context) {
	var req SubmitContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "content_type and original_content are required")
		return
	}

	req.OriginalContent = strings.TrimSpace(req.OriginalContent)
	if req.OriginalContent == "" {
		respondBadRequest(c, "original_content cannot be empty")
		return
	}
	if req.ContentType != entities.ContentTypeWebpage && req.ContentType != entities.ContentTypeText {
		respondBadRequest(c, "content_type must be \"webpage\" or \"text\"")
		return
	}

	if cc.auditor != nil {
		if _, err := cc.auditor.SaveJSON(req); err != nil {
			log.Printf("Failed to audit content submission: %v", err)
		}
	}

	row := &entities.CollectedContent{
		ContentType:     req.ContentType,
		OriginalContent: req.OriginalContent,
	}
	if err := cc.store.Create(row); err != nil {
		respondInternalError(c, err, "create collected content")
		return
	}

	if cc.taskClient != nil {
		if _, err := cc.taskClient.Add(tasks.EnrichContentTask{ContentID: row.ID}).Save(); err != nil {
			log.Printf("Failed to enqueue enrichment for content %d: %v", row.ID, err)
		}
	}

	respondCreated(c, row)
}

// EnrichContent runs the classification pipeline synchronously for one row.
// POST /api/content/:id/enrich
func (cc *ContentController) EnrichContent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := cc.pipeline.Enrich(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, enrichment.ErrInvalidInput):
			respondBadRequest(c, "missing content id")
		case errors.Is(err, enrichment.ErrNotFound):
			respondNotFound(c, "content")
		case errors.Is(err, classifier.ErrUpstream):
			log.Printf("Classification failed for content %d: %v", id, err)
			respondBadGateway(c, "classification service failure")
		default:
			respondInternalError(c, err, "enrich content")
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Content processed successfully",
		Data:    result,
	})
}

// ListContent returns the most recent submissions.
// GET /api/content
func (cc *ContentController) ListContent(c *gin.Context) {
	limit := 50
	rows, err := cc.store.ListRecent(limit)
	if err != nil {
		respondInternalError(c, err, "list content")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"content": rows,
		"limit":   limit,
	})
}
