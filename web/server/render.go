package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// uploadedSceneName names scenes sent in a POST body
const uploadedSceneName = "upload"

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene              string `json:"scene"` // Built-in id, or file:<name> from /api/scenes
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	TransparentShadows bool   `json:"transparentShadows"`
}

// TileUpdate is sent via SSE when a tile finishes
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // Pixel offset of the tile
	Y          int    `json:"y"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"`
	TotalTiles int    `json:"totalTiles"`
}

// CompleteUpdate is the final SSE event of a successful render
type CompleteUpdate struct {
	Scene          string  `json:"scene"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG of the full image
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	ElapsedMs      int64   `json:"elapsedMs"`
	TotalPixels    int     `json:"totalPixels"`
	HitPixels      int     `json:"hitPixels"`
	TotalTiles     int     `json:"totalTiles"`
	Workers        int     `json:"workers"`
	HitRatio       float64 `json:"hitRatio"`
	PrimitiveCount int     `json:"primitiveCount"`
	LightCount     int     `json:"lightCount"`
}

// SSEEvent is one server-sent event. Type is "tile", "console", "error" or "complete".
type SSEEvent struct {
	Type string
	Data string
}

// handleRender renders a scene and streams finished tiles via SSE.
// GET selects the scene with ?scene=; POST sends a scene file as the body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, name, err := s.loadScene(r, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sceneObj.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid scene: %v", err))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	s.setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	events := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(ctx, w, flusher, events)
		close(writerDone)
	}()

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(consoleChan, events)
		close(consoleDone)
	}()
	webLogger := NewWebLogger(renderID, consoleChan, s.log)

	opts := s.renderOptions(req)
	opts.OnTile = func(tile renderer.TileCompletionResult) {
		s.handleTileUpdate(events, tile)
	}

	webLogger.Infof("Rendering %s at %dx%d", name, req.Width, req.Height)
	start := time.Now()
	buffer, stats, err := renderer.NewRaytracer(sceneObj, webLogger).Render(ctx, opts)

	close(consoleChan)
	<-consoleDone

	if err != nil {
		events <- SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)}
	} else {
		s.handleComplete(events, name, sceneObj, buffer, stats, time.Since(start))
	}

	close(events)
	<-writerDone
}

// parseRenderRequest reads scene, size and shadow options from the query string
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", DefaultImageSize, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", DefaultImageSize, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.TransparentShadows, err = parseBoolParam(query, "transparentShadows", s.render.TransparentShadows); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 1000*1000 {
		s.log.Warnf("Large render requested: %dx%d", req.Width, req.Height)
	}
	return req, nil
}

// loadScene builds the requested scene from the POST body or the scene reference
func (s *Server) loadScene(r *http.Request, req *RenderRequest) (*scene.Scene, string, error) {
	if r.Method == http.MethodPost {
		sceneObj, err := loaders.ParseScene(io.LimitReader(r.Body, maxSceneBody))
		if err != nil {
			return nil, "", fmt.Errorf("invalid scene file: %w", err)
		}
		return sceneObj, uploadedSceneName, nil
	}
	return loaders.ResolveScene(req.Scene, s.scenesDir)
}

func (s *Server) renderOptions(req *RenderRequest) renderer.Options {
	return renderer.Options{
		Width:    req.Width,
		Height:   req.Height,
		TileSize: s.render.TileSize,
		Workers:  s.render.Workers,
		Seed:     s.render.Seed,
		Shadow:   renderer.ShadowPolicyFor(req.TransparentShadows),
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents is the only goroutine that writes to w. After the client
// disconnects it keeps draining events so senders never block.
func (s *Server) writeSSEEvents(ctx context.Context, w io.Writer, flusher http.Flusher, events <-chan SSEEvent) {
	failed := false
	for event := range events {
		if failed || ctx.Err() != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			failed = true
			continue
		}
		flusher.Flush()
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(consoleChan <-chan ConsoleMessage, events chan<- SSEEvent) {
	for msg := range consoleChan {
		data, err := json.Marshal(msg)
		if err != nil {
			s.log.Warnf("Error marshaling console message: %v", err)
			continue
		}
		events <- SSEEvent{Type: "console", Data: string(data)}
	}
}

// handleTileUpdate encodes a finished tile and queues it
func (s *Server) handleTileUpdate(events chan<- SSEEvent, tile renderer.TileCompletionResult) {
	tileData, err := imageToBase64PNG(tile.TileImage)
	if err != nil {
		s.log.Warnf("Error encoding tile image (%d, %d): %v", tile.TileX, tile.TileY, err)
		return
	}

	data, err := json.Marshal(TileUpdate{
		TileX:      tile.TileX,
		TileY:      tile.TileY,
		X:          tile.Bounds.Min.X,
		Y:          tile.Bounds.Min.Y,
		ImageData:  tileData,
		TileNumber: tile.TileNumber,
		TotalTiles: tile.TotalTiles,
	})
	if err != nil {
		s.log.Warnf("Error marshaling tile update: %v", err)
		return
	}
	events <- SSEEvent{Type: "tile", Data: string(data)}
}

// handleComplete queues the full image and render statistics
func (s *Server) handleComplete(events chan<- SSEEvent, name string, sceneObj *scene.Scene,
	buffer *renderer.Buffer, stats renderer.RenderStats, elapsed time.Duration) {

	imageData, err := imageToBase64PNG(buffer.RGBA())
	if err != nil {
		events <- SSEEvent{Type: "error", Data: fmt.Sprintf("failed to encode image: %v", err)}
		return
	}

	data, err := json.Marshal(CompleteUpdate{
		Scene:          name,
		ImageData:      imageData,
		Width:          buffer.Width,
		Height:         buffer.Height,
		ElapsedMs:      elapsed.Milliseconds(),
		TotalPixels:    stats.TotalPixels,
		HitPixels:      stats.HitPixels,
		TotalTiles:     stats.TotalTiles,
		Workers:        stats.Workers,
		HitRatio:       stats.HitRatio(),
		PrimitiveCount: sceneObj.GetPrimitiveCount(),
		LightCount:     len(sceneObj.Lights),
	})
	if err != nil {
		events <- SSEEvent{Type: "error", Data: fmt.Sprintf("failed to encode stats: %v", err)}
		return
	}
	events <- SSEEvent{Type: "complete", Data: string(data)}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
