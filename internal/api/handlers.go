package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/ops"
)

type toggleStreakRequest struct {
	Category string `json:"category" binding:"required"`
	DateISO  string `json:"dateISO"`
	Note     string `json:"note"`
}

// addTasksRequest accepts either one task or {"tasks": [...]}.
type addTasksRequest struct {
	ops.TaskInput
	Tasks []ops.TaskInput `json:"tasks"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type statusRequest struct {
	Status domain.ProjectStatus `json:"status" binding:"required"`
}

type suggestRequest struct {
	Feedback    string `json:"feedback"`
	ImageBase64 string `json:"imageBase64"`
}

func (s *Server) respond(c *gin.Context, res ops.Result, err error) {
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleState(c *gin.Context) {
	snap := s.store.Snapshot()
	today := domain.Today(s.store.Now())
	streaks := make(map[string]int, len(snap.Categories))
	for _, cat := range snap.Categories {
		streaks[cat.ID] = domain.StreakCount(snap, cat.ID, today)
	}
	c.JSON(http.StatusOK, gin.H{
		"snapshot":       snap,
		"today":          today,
		"streaks":        streaks,
		"balance":        domain.Balance(snap),
		"spendAllowed":   domain.SpendAllowed(snap, today),
		"categoriesDone": domain.CategoriesDoneToday(snap, today),
		"xpToday":        domain.XPEarnedToday(snap, today),
	})
}

func (s *Server) handleReconcile(c *gin.Context) {
	report, err := s.store.Reconcile(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"changed":       report.Changed(),
		"shieldDays":    report.ShieldDays,
		"tasksReopened": report.TasksReopened,
		"snapshot":      s.store.Snapshot(),
	})
}

func (s *Server) handleToggleStreak(c *gin.Context) {
	var req toggleStreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.store.ToggleMiniTask(c.Request.Context(), req.Category, req.DateISO, req.Note)
	s.respond(c, res, err)
}

func (s *Server) handleAddTasks(c *gin.Context) {
	var req addTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req.Tasks) > 0 {
		res, err := s.store.AddTasks(c.Request.Context(), req.Tasks)
		s.respond(c, res, err)
		return
	}
	res, err := s.store.AddTask(c.Request.Context(), req.TaskInput)
	s.respond(c, res, err)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var patch ops.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.store.UpdateTask(c.Request.Context(), c.Param("id"), patch)
	s.respond(c, res, err)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	res, err := s.store.DeleteTask(c.Request.Context(), c.Param("id"))
	s.respond(c, res, err)
}

func (s *Server) handleToggleTask(c *gin.Context) {
	res, err := s.store.ToggleTaskDone(c.Request.Context(), c.Param("id"))
	s.respond(c, res, err)
}

func (s *Server) handleAddProject(c *gin.Context) {
	var in ops.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.store.AddProject(c.Request.Context(), in)
	s.respond(c, res, err)
}

func (s *Server) handleProjectStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.store.SetProjectStatus(c.Request.Context(), c.Param("id"), req.Status)
	s.respond(c, res, err)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	res, err := s.store.DeleteProject(c.Request.Context(), c.Param("id"))
	s.respond(c, res, err)
}

func (s *Server) handleSuggestProjectTasks(c *gin.Context) {
	var req suggestRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	res, err := s.store.GenerateProjectTasks(c.Request.Context(), c.Param("id"), req.Feedback, req.ImageBase64)
	s.respond(c, res, err)
}

func (s *Server) handleAddCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.store.AddCategory(c.Request.Context(), req.Name)
	s.respond(c, res, err)
}

func (s *Server) handleRenameCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.store.RenameCategory(c.Request.Context(), c.Param("id"), req.Name)
	s.respond(c, res, err)
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	res, err := s.store.DeleteCategory(c.Request.Context(), c.Param("id"))
	s.respond(c, res, err)
}

func (s *Server) handleSuggestMiniTasks(c *gin.Context) {
	ideas, err := s.store.SuggestMiniTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": ideas})
}

func (s *Server) handlePostXP(c *gin.Context) {
	res, err := s.store.PostXPToBank(c.Request.Context())
	s.respond(c, res, err)
}

func (s *Server) handleAddLedgerEntry(c *gin.Context) {
	var in ops.LedgerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.store.AddLedgerEntry(c.Request.Context(), in)
	s.respond(c, res, err)
}

func (s *Server) handleBuyShield(c *gin.Context) {
	res, err := s.store.BuyShield(c.Request.Context(), c.Param("category"))
	s.respond(c, res, err)
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	var next domain.Settings
	if err := c.ShouldBindJSON(&next); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.store.UpdateSettings(c.Request.Context(), next)
	s.respond(c, res, err)
}

func (s *Server) handleExport(c *gin.Context) {
	data, name, err := s.store.Export()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) handleImport(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "import file exceeds 5MB"})
			return
		}
		badRequest(c, err)
		return
	}
	res, err := s.store.Import(c.Request.Context(), data)
	s.respond(c, res, err)
}

// handleReset wipes all data, so it insists on ?confirm=yes.
func (s *Server) handleReset(c *gin.Context) {
	if c.Query("confirm") != "yes" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reset requires confirm=yes"})
		return
	}
	res, err := s.store.Reset(c.Request.Context())
	s.respond(c, res, err)
}

func (s *Server) handlePull(c *gin.Context) {
	found, err := s.store.PullCloud(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": found, "snapshot": s.store.Snapshot()})
}

func (s *Server) handlePush(c *gin.Context) {
	if err := s.store.PushCloud(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
