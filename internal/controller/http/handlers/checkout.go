package handlers

import (
	"errors"
	"net/http"

	"checkout-svc/internal/controller/apperror"
	"checkout-svc/internal/domain/checkout"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service *checkout.Service
}

func NewCheckoutHandler(s *checkout.Service) CheckoutHandler {
	return CheckoutHandler{service: s}
}

// Create turns an order submission into a hosted checkout session and
// returns the payer redirect URL.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var sub checkout.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	redirect, err := h.service.CreateCheckout(c.Request.Context(), sub)
	if err != nil {
		if apperror.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, redirect)
}

type retrieveRequest struct {
	SessionID string `json:"session_id"`
}

type retrieveResponse struct {
	Success bool `json:"success"`
	checkout.SessionResult
}

// Retrieve fetches a session by id and returns the normalized confirmation
// view of it.
func (h *CheckoutHandler) Retrieve(c *gin.Context) {
	var req retrieveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing session_id"})
		return
	}

	result, err := h.service.ConfirmSession(c.Request.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, retrieveResponse{Success: true, SessionResult: result})
}
