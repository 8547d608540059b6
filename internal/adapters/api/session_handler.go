package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/core/mapview"
)

// CreateSessionRequest opens a map bound to a client container
type CreateSessionRequest struct {
	Container string `json:"container" binding:"required,max=64"`
	Locale    string `json:"locale" binding:"omitempty,locale"`
	Width     int    `json:"width" binding:"omitempty,min=1,max=8192"`
	Height    int    `json:"height" binding:"omitempty,min=1,max=8192"`
}

// CoordinateRequest is a point on the map
type CoordinateRequest struct {
	Lat *float64 `json:"lat" binding:"required,latitude"`
	Lng *float64 `json:"lng" binding:"required,longitude"`
}

// ViewportRequest moves a session's map
type ViewportRequest struct {
	Center *CoordinateRequest `json:"center" binding:"required"`
	Zoom   *int               `json:"zoom" binding:"required,zoomlevel"`
}

func (s *HTTPServerAdapter) session(c *gin.Context) (MapSession, bool) {
	session, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return nil, false
	}
	return session, true
}

// createSession handles POST /api/sessions
func (s *HTTPServerAdapter) createSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, bindingError(err))
		return
	}

	session, err := s.sessions.Create(c.Request.Context(), mapview.Options{
		Container: req.Container,
		Locale:    req.Locale,
		Width:     req.Width,
		Height:    req.Height,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	view, err := session.View(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	slog.Debug("Map session created", "session", session.ID(), "status", view.Status)
	c.JSON(http.StatusCreated, view)
}

// getSession handles GET /api/sessions/:id
func (s *HTTPServerAdapter) getSession(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	view, err := session.View(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// deleteSession handles DELETE /api/sessions/:id
func (s *HTTPServerAdapter) deleteSession(c *gin.Context) {
	if err := s.sessions.Close(c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// setViewport handles PUT /api/sessions/:id/viewport. The marker set follows
// asynchronously once the map has been still for the debounce period.
func (s *HTTPServerAdapter) setViewport(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	var req ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, bindingError(err))
		return
	}

	center := geo.LatLng{Lat: *req.Center.Lat, Lng: *req.Center.Lng}
	if err := session.SetViewport(center, *req.Zoom); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// getMarkers handles GET /api/sessions/:id/markers
func (s *HTTPServerAdapter) getMarkers(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	features, err := session.Markers()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, features)
}

// clickMarker handles POST /api/sessions/:id/markers/:kind/:osmId/click
func (s *HTTPServerAdapter) clickMarker(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	placeID := c.Param("kind") + "/" + c.Param("osmId")
	snapshot, err := session.Click(c.Request.Context(), placeID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// streamSheet handles GET /api/sessions/:id/sheet as a server-sent event
// stream of the snapshots shown on the bottom sheet
func (s *HTTPServerAdapter) streamSheet(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	sheet := session.Sheet()
	updates, unsubscribe := sheet.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent("connected", gin.H{"sessionId": session.ID()})
	if current := sheet.Current(); current != nil {
		c.SSEvent("snapshot", current)
	}
	c.Writer.Flush()

	heartbeat := time.NewTicker(s.config.SheetHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case snapshot, open := <-updates:
			if !open {
				c.SSEvent("closed", gin.H{"sessionId": session.ID()})
				c.Writer.Flush()
				return
			}
			c.SSEvent("snapshot", snapshot)
			c.Writer.Flush()
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		}
	}
}
