package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"soulsync/internal/domain"
	"soulsync/internal/reflection"
	"soulsync/internal/service"
	"soulsync/internal/storage"
)

// DocumentSource exposes the raw persisted document for snapshot uploads.
type DocumentSource interface {
	Document() ([]byte, error)
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	accounts  service.AccountService
	goals     service.GoalService
	moods     service.MoodService
	journal   service.JournalService
	dashboard service.DashboardService

	document  DocumentSource
	storage   storage.Service
	bucket    string
	keyPrefix string

	jwtSecret string
	tokenTTL  time.Duration
}

func NewHandler(
	accounts service.AccountService,
	goals service.GoalService,
	moods service.MoodService,
	journal service.JournalService,
	dashboard service.DashboardService,
	document DocumentSource,
	store storage.Service,
	bucket, keyPrefix string,
	jwtSecret string,
	tokenTTL time.Duration,
) *Handler {
	return &Handler{
		accounts:  accounts,
		goals:     goals,
		moods:     moods,
		journal:   journal,
		dashboard: dashboard,
		document:  document,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	authed := api.Group("")
	authed.Use(h.authMiddleware())
	{
		authed.POST("/goals", h.addGoal)
		authed.GET("/goals", h.listGoals)
		authed.PUT("/goals/:id", h.updateGoal)
		authed.DELETE("/goals/:id", h.deleteGoal)

		authed.POST("/moods", h.logMood)
		authed.GET("/moods", h.listMoods)
		authed.GET("/moods/options", h.moodOptions)

		authed.POST("/journal", h.addJournalEntry)
		authed.GET("/journal", h.listJournalEntries)
		authed.GET("/journal/prompt", h.journalPrompt)
		authed.POST("/journal/reflection", h.requestReflection)

		authed.GET("/dashboard/mood-trend", h.moodTrend)
		authed.GET("/dashboard/mood-distribution", h.moodDistribution)
		authed.GET("/dashboard/goal-summary", h.goalSummary)
		authed.GET("/dashboard/journal-insights", h.journalInsights)

		authed.POST("/snapshots", h.createSnapshot)
		authed.GET("/snapshots", h.listSnapshots)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// --- auth ---

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username, err := h.accounts.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"username": username})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.issueToken(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "token": token})
}

// --- goals ---

type goalRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      string  `json:"status"`
}

func (h *Handler) addGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goals.AddGoal(c.Request.Context(), actingUser(c), req.Title, req.Description, req.DueDate, domain.GoalStatus(req.Status))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goalToResponse(*goal))
}

func (h *Handler) listGoals(c *gin.Context) {
	statuses := c.QueryArray("status")
	filter := make([]domain.GoalStatus, 0, len(statuses))
	for _, status := range statuses {
		filter = append(filter, domain.GoalStatus(status))
	}
	if len(statuses) == 0 {
		// No explicit filter selects every known status.
		filter = []domain.GoalStatus{
			domain.GoalStatusToDo,
			domain.GoalStatusInProgress,
			domain.GoalStatusCompleted,
			domain.GoalStatusCancelled,
		}
	}

	sortKey := domain.GoalSort(c.DefaultQuery("sort", string(domain.GoalSortNone)))
	switch sortKey {
	case domain.GoalSortNone, domain.GoalSortDueDateAsc, domain.GoalSortDueDateDesc, domain.GoalSortStatus:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid sort key %q", sortKey)})
		return
	}

	goals, err := h.goals.ListGoals(c.Request.Context(), actingUser(c), filter, sortKey)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	resp := make([]GoalResponse, len(goals))
	for i := range goals {
		resp[i] = goalToResponse(goals[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goals.UpdateGoal(c.Request.Context(), actingUser(c), c.Param("id"), req.Title, req.Description, req.DueDate, domain.GoalStatus(req.Status))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goalToResponse(*goal))
}

func (h *Handler) deleteGoal(c *gin.Context) {
	id := c.Param("id")
	if err := h.goals.DeleteGoal(c.Request.Context(), actingUser(c), id); err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// --- moods ---

type logMoodRequest struct {
	Mood        string `json:"mood" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) logMood(c *gin.Context) {
	var req logMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.moods.LogMood(c.Request.Context(), actingUser(c), domain.Mood(req.Mood), req.Description)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) listMoods(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.moods.ListMoods(c.Request.Context(), actingUser(c), limit)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// moodOptions lists the selectable moods with their emojis, in display order.
func (h *Handler) moodOptions(c *gin.Context) {
	moods := domain.Moods()
	resp := make([]gin.H, len(moods))
	for i, mood := range moods {
		emoji, _ := domain.MoodEmoji(mood)
		resp[i] = gin.H{"mood": mood, "emoji": emoji}
	}
	c.JSON(http.StatusOK, resp)
}

// --- journal ---

type journalEntryRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) addJournalEntry(c *gin.Context) {
	var req journalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.journal.AddEntry(c.Request.Context(), actingUser(c), req.Content)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) listJournalEntries(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.journal.ListEntries(c.Request.Context(), actingUser(c), limit)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) journalPrompt(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prompt": h.journal.Prompt()})
}

func (h *Handler) requestReflection(c *gin.Context) {
	var req journalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.journal.Reflect(c.Request.Context(), req.Content)
	if err != nil {
		var providerErr *reflection.ProviderError
		switch {
		case errors.Is(err, reflection.ErrMissingCredential):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		case errors.As(err, &providerErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			h.renderServiceError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"reflection": text})
}

// --- dashboard ---

func (h *Handler) moodTrend(c *gin.Context) {
	points, warnings, err := h.dashboard.MoodTrend(c.Request.Context(), actingUser(c))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	resp := gin.H{"points": points}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) moodDistribution(c *gin.Context) {
	distribution, warnings, err := h.dashboard.DailyMoodDistribution(c.Request.Context(), actingUser(c))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	resp := gin.H{"distribution": distribution}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) goalSummary(c *gin.Context) {
	summary, err := h.dashboard.GoalSummary(c.Request.Context(), actingUser(c))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) journalInsights(c *gin.Context) {
	insights, err := h.dashboard.JournalInsights(c.Request.Context(), actingUser(c))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// --- snapshots ---

func (h *Handler) createSnapshot(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}

	data, err := h.document.Document()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	key := fmt.Sprintf("%s/users-%s.json", h.keyPrefix, time.Now().UTC().Format("20060102T150405Z"))
	location, err := h.storage.PutObject(c.Request.Context(), h.bucket, key, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"location": location})
}

func (h *Handler) listSnapshots(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}

	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, h.keyPrefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

// --- responses ---

type GoalResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date,omitempty"`
	Status      string  `json:"status"`
}

func goalToResponse(goal domain.Goal) GoalResponse {
	return GoalResponse{
		ID:          goal.ID,
		Title:       goal.Title,
		Description: goal.Description,
		DueDate:     goal.DueDate,
		Status:      string(goal.Status),
	}
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}

func parseLimit(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("limit", "0")
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return limit, nil
}

func (h *Handler) renderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyTitle),
		errors.Is(err, service.ErrTitleTooLong),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrUnknownMood),
		errors.Is(err, service.ErrUnknownStatus),
		errors.Is(err, service.ErrDescriptionTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
