package core

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, authService AuthService) *gin.Engine {
	r := gin.Default()

	r.Use(CORSMiddleware(cfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/signup", func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
			return
		}

		token, err := authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				respondError(c, http.StatusBadRequest, "EMAIL_TAKEN", "email already registered")
				return
			}
			log.Printf("signup failed: %v", err)
			respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", "storage error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
	})

	r.POST("/signin", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
			return
		}

		token, err := authService.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
				return
			}
			log.Printf("signin failed: %v", err)
			respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", "storage error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
	})

	r.GET("/token", func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing authorization header")
			return
		}

		user, err := authService.Introspect(c.Request.Context(), header)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidToken):
				respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			case errors.Is(err, ErrUserNotFound):
				respondError(c, http.StatusNotFound, "NOT_FOUND", "user not found")
			default:
				log.Printf("token introspection failed: %v", err)
				respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", "storage error")
			}
			return
		}

		c.JSON(http.StatusOK, user)
	})

	return r
}
