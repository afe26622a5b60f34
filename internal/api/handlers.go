// ABOUTME: JSON handlers for the leaderboard REST API.
// ABOUTME: Maps storage and validation errors onto status codes and reasons.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/pushups/internal/models"
)

// Error reasons returned as {"error": reason}.
const (
	reasonForbidden      = "forbidden"
	reasonInvalidCount   = "invalid_count"
	reasonInvalidRequest = "invalid_request"
	reasonNotFound       = "not_found"
	reasonInternal       = "internal"
)

type rabbitInfo struct {
	Name   string `json:"name"`
	Target int    `json:"target"`
}

type challengeResponse struct {
	Start   string       `json:"start"`
	End     string       `json:"end"`
	Title   *string      `json:"title,omitempty"`
	Goal    *int         `json:"goal,omitempty"`
	Rabbits []rabbitInfo `json:"rabbits,omitempty"`
	Active  bool         `json:"active"`
}

type pushRequest struct {
	Person string          `json:"person"`
	Count  json.RawMessage `json:"count"`
	Secret string          `json:"secret"`
}

type pushResponse struct {
	Total              int  `json:"total"`
	ChallengeTotal     int  `json:"challenge_total"`
	CountsForChallenge bool `json:"counts_for_challenge"`
}

type adminInfo struct {
	Person         string `json:"person"`
	Total          int    `json:"total"`
	ChallengeTotal int    `json:"challenge_total"`
}

func abortWith(c *gin.Context, status int, reason string) {
	c.AbortWithStatusJSON(status, gin.H{"error": reason})
}

func (s *Server) internalError(c *gin.Context, op string, err error) {
	s.logger.Error(op, "err", err, "request_id", c.GetString(requestIDKey))
	abortWith(c, http.StatusInternalServerError, reasonInternal)
}

func (s *Server) getChallenge(c *gin.Context) {
	ch, err := s.repo.GetChallenge()
	if err != nil {
		s.internalError(c, "get challenge", err)
		return
	}
	users, err := s.repo.ListUsers()
	if err != nil {
		s.internalError(c, "list users", err)
		return
	}

	resp := challengeResponse{
		Start:  ch.Start,
		End:    ch.End,
		Title:  ch.Title,
		Goal:   ch.Goal,
		Active: ch.Contains(s.now()),
	}
	for _, u := range users {
		if u.IsRabbit {
			resp.Rabbits = append(resp.Rabbits, rabbitInfo{Name: u.Name, Target: u.RabbitTarget})
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getChallengeTotals(c *gin.Context) {
	totals, err := s.repo.ChallengeTotals(s.now(), s.interval)
	if err != nil {
		s.internalError(c, "challenge totals", err)
		return
	}
	c.JSON(http.StatusOK, models.TotalsMap(totals))
}

// getTotals reports every real participant, with 0 for those without
// entries. Rabbits have no all-time figure and are omitted.
func (s *Server) getTotals(c *gin.Context) {
	totals, err := s.repo.Totals()
	if err != nil {
		s.internalError(c, "totals", err)
		return
	}
	c.JSON(http.StatusOK, models.TotalsMap(totals))
}

func (s *Server) postPush(c *gin.Context) {
	var req pushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, http.StatusBadRequest, reasonInvalidRequest)
		return
	}

	user, err := s.repo.Authenticate(req.Person, req.Secret)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			abortWith(c, http.StatusForbidden, reasonForbidden)
			return
		}
		s.internalError(c, "authenticate", err)
		return
	}

	count, err := parseCount(req.Count)
	if err != nil {
		abortWith(c, http.StatusBadRequest, reasonInvalidCount)
		return
	}

	now := s.now()
	if _, err := s.repo.AddEntry(user.ID, count, now); err != nil {
		if models.IsValidation(err) {
			abortWith(c, http.StatusBadRequest, reasonInvalidCount)
			return
		}
		s.internalError(c, "add entry", err)
		return
	}

	total, err := s.repo.UserTotal(user.ID)
	if err != nil {
		s.internalError(c, "user total", err)
		return
	}
	challengeTotal, err := s.repo.UserChallengeTotal(user, now, s.interval)
	if err != nil {
		s.internalError(c, "user challenge total", err)
		return
	}
	ch, err := s.repo.GetChallenge()
	if err != nil {
		s.internalError(c, "get challenge", err)
		return
	}

	s.logger.Info("entry added", "person", user.Name, "count", count, "total", total)
	c.JSON(http.StatusOK, pushResponse{
		Total:              total,
		ChallengeTotal:     challengeTotal,
		CountsForChallenge: ch.Contains(now),
	})
}

// parseCount accepts a JSON integer or a string of decimal digits.
func parseCount(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, models.Invalid("count", "is required")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, models.Invalid("count", "must be an integer")
		}
		return models.ParseCount(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, models.Invalid("count", "must be an integer")
	}
	v, err := n.Int64()
	if err != nil || v < models.MinCount || v > models.MaxCount {
		return 0, models.Invalid("count", "must be %d-%d", models.MinCount, models.MaxCount)
	}
	return int(v), nil
}

// userBySecret resolves the secret query parameter, writing a 404 when it
// matches nobody.
func (s *Server) userBySecret(c *gin.Context, secret string) (*models.User, bool) {
	user, err := s.repo.GetUserBySecret(secret)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			abortWith(c, http.StatusNotFound, reasonNotFound)
			return nil, false
		}
		s.internalError(c, "user by secret", err)
		return nil, false
	}
	return user, true
}

func (s *Server) getHistory(c *gin.Context) {
	user, ok := s.userBySecret(c, c.Query("secret"))
	if !ok {
		return
	}
	entries, err := s.repo.History(user.ID, models.HistoryLimit)
	if err != nil {
		s.internalError(c, "history", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) adminInfoFor(user *models.User) (*adminInfo, error) {
	total, err := s.repo.UserTotal(user.ID)
	if err != nil {
		return nil, err
	}
	challengeTotal, err := s.repo.UserChallengeTotal(user, s.now(), s.interval)
	if err != nil {
		return nil, err
	}
	return &adminInfo{Person: user.Name, Total: total, ChallengeTotal: challengeTotal}, nil
}

func (s *Server) getAdminInfo(c *gin.Context) {
	user, ok := s.userBySecret(c, c.Query("secret"))
	if !ok {
		return
	}
	info, err := s.adminInfoFor(user)
	if err != nil {
		s.internalError(c, "admin info", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) getHealth(c *gin.Context) {
	if err := s.repo.Ping(c.Request.Context()); err != nil {
		s.logger.Error("health check", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	version, err := s.repo.SchemaVersion()
	if err != nil {
		s.logger.Error("health check", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "schema_version": version})
}
