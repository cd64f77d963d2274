package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Uploader stores rendered images somewhere outside the server
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// Server handles web requests for the raycaster
type Server struct {
	port     int
	uploader Uploader
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// WithUploader enables ?upload=true on render requests
func (s *Server) WithUploader(uploader Uploader) *Server {
	s.uploader = uploader
	return s
}

// SceneRequest holds the scene parameters shared by render and inspect requests
type SceneRequest struct {
	Scene       string  `json:"scene"`       // Scene name (e.g., "default")
	Width       int     `json:"width"`       // Image width
	Height      int     `json:"height"`      // Image height, 0 derives it from the aspect ratio
	Samples     int     `json:"samples"`     // Samples per pixel, a perfect square
	PixelExtent float64 `json:"pixelExtent"` // Pixel size on the view plane
	Projection  string  `json:"projection"`  // "perspective" or "orthographic", empty keeps the scene default
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"scenes": scene.List()})
}

// parseSceneRequest reads the scene parameters from the query string
func parseSceneRequest(values url.Values) (*SceneRequest, error) {
	req := &SceneRequest{Scene: "default"}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}
	req.Projection = values.Get("projection")

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 0, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 16, 1, 10000); err != nil {
		return nil, err
	}
	if req.PixelExtent, err = parseFloatParam(values, "extent", 1, 1e-6, 1e6); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width > 800 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds and validates the requested scene
func createScene(req *SceneRequest) (*scene.Scene, error) {
	opts := scene.Options{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		PixelExtent:     req.PixelExtent,
	}
	if req.Projection != "" {
		projection, err := geometry.ParseProjection(req.Projection)
		if err != nil {
			return nil, err
		}
		opts.Projection = &projection
	}

	sceneObj, err := scene.Create(req.Scene, opts)
	if err != nil {
		return nil, err
	}
	if err := sceneObj.Validate(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// writeJSONError writes a JSON error body with the given status
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
