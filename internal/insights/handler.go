package insights

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kintai-backend/internal/attendance"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/attendance/ask", h.Ask)
	r.GET("/attendance/summary/daily", h.DailySummary)
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}
	// 常に 200 + テキスト（バックエンド全断でもフォールバック文が返る）
	answer := h.svc.AnswerQuestion(c.Request.Context(), req.Question)
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (h *Handler) DailySummary(c *gin.Context) {
	date, err := time.ParseInLocation(attendance.DateLayout, c.Query("date"), time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	summary, err := h.svc.DailySummary(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
