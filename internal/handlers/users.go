package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorhub/api/internal/middleware"
	"mentorhub/api/internal/repository"
	"mentorhub/api/internal/service"
)

func (h HandlerSet) ListUsers(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profiles, err := h.profiles.List(c.Request.Context(), viewer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

func (h HandlerSet) GetUser(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), viewer.ID, c.Param("user"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

type updateUserRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	PhoneNumber *string `json:"phone_number"`
}

func (h HandlerSet) UpdateUser(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), viewer.ID, c.Param("user"), service.ProfilePatch{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own profile"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

type addMenteesRequest struct {
	Mentees any `json:"mentees"`
}

func (h HandlerSet) AddMentees(c *gin.Context) {
	var req addMenteesRequest
	// A malformed body still goes through the service so that an unknown
	// mentor reports 404 ahead of input validation.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		req.Mentees = struct{}{}
	}

	result, err := h.mentorship.AssignMentees(c.Request.Context(), c.Param("user"), req.Mentees)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMentorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found"})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mentees must be an array of usernames"})
		case errors.Is(err, service.ErrUnknownMentees):
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or more mentee usernames do not exist"})
		case errors.Is(err, service.ErrSelfAssignment):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot assign a mentor as their own mentee"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Assigned %d mentees to %s", result.Assigned, result.Mentor),
	})
}
