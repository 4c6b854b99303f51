package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rental-backoffice/cleaning"
	"github.com/yeremiapane/rental-backoffice/models"
	"github.com/yeremiapane/rental-backoffice/services"
	"github.com/yeremiapane/rental-backoffice/utils"
)

// Assigner is the write side of the cleaning board.
type Assigner interface {
	Assign(ctx context.Context, bookingID, cleanerID string) (*models.Booking, error)
	AssignNext(ctx context.Context, cleanerID string) (*models.Booking, error)
	Metrics() services.AssignmentMetrics
}

type CleaningController struct {
	Board    services.BoardReader
	Cache    services.BoardCache
	Assigner Assigner
}

func NewCleaningController(board services.BoardReader, cache services.BoardCache, assigner Assigner) *CleaningController {
	return &CleaningController{Board: board, Cache: cache, Assigner: assigner}
}

// currentBoard prefers the poller, then the shared cache, then a synchronous fetch.
func (cc *CleaningController) currentBoard(c *gin.Context) (cleaning.Board, bool) {
	if board, ok := cc.Board.Snapshot(); ok {
		return board, true
	}

	if cc.Cache != nil {
		board, ok, err := cc.Cache.Load(c.Request.Context())
		if err != nil {
			utils.ErrorLogger.WithError(err).Error("Board cache read failed")
		}
		if ok {
			return board, true
		}
	}

	if err := cc.Board.Refresh(c.Request.Context()); err != nil {
		utils.ErrorLogger.WithError(err).Error("Synchronous board refresh failed")
		utils.RespondError(c, http.StatusServiceUnavailable, services.ErrBoardUnavailable)
		return cleaning.Board{}, false
	}
	board, ok := cc.Board.Snapshot()
	if !ok {
		utils.RespondError(c, http.StatusServiceUnavailable, services.ErrBoardUnavailable)
	}
	return board, ok
}

func (cc *CleaningController) GetBoard(c *gin.Context) {
	board, ok := cc.currentBoard(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cleaning board", board)
}

func (cc *CleaningController) GetQueue(c *gin.Context) {
	board, ok := cc.currentBoard(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cleaning queue", gin.H{
		"queue": board.Queue,
		"next":  board.Next,
	})
}

func (cc *CleaningController) GetAvailability(c *gin.Context) {
	board, ok := cc.currentBoard(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cleaner availability", gin.H{
		"cleaners":     board.Cleaners,
		"availability": board.Availability,
	})
}

func (cc *CleaningController) Assign(c *gin.Context) {
	var req struct {
		BookingID string `json:"booking_id" binding:"required"`
		CleanerID string `json:"cleaner_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := cc.Assigner.Assign(c.Request.Context(), req.BookingID, req.CleanerID)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cleaner assigned", booking)
}

// AssignNext hands the earliest check-out in the queue to the cleaner.
func (cc *CleaningController) AssignNext(c *gin.Context) {
	var req struct {
		CleanerID string `json:"cleaner_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := cc.Assigner.AssignNext(c.Request.Context(), req.CleanerID)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Next room assigned", booking)
}

func (cc *CleaningController) Refresh(c *gin.Context) {
	if err := cc.Board.Refresh(c.Request.Context()); err != nil {
		utils.ErrorLogger.WithError(err).Error("Manual board refresh failed")
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}
	board, _ := cc.Board.Snapshot()
	utils.RespondJSON(c, http.StatusOK, "Board refreshed", board)
}

func (cc *CleaningController) GetMetrics(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Assignment metrics", cc.Assigner.Metrics())
}
