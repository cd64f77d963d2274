package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-raycaster/pkg/integrator"
	"github.com/df07/go-raycaster/pkg/output"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// RenderResponse is returned by /api/render?format=json
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	UploadKey string           `json:"uploadKey,omitempty"`
}

// Stats represents render statistics
type Stats struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int64   `json:"totalSamples"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	Tiles           int     `json:"tiles"`
	Workers         int     `json:"workers"`
	ElapsedMs       int64   `json:"elapsedMs"`
	Luminance       float64 `json:"luminance"`
}

// handleRender renders the requested scene and returns a PNG, or JSON with
// the PNG embedded when format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseSceneRequest(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "png" && format != "json" {
		writeJSONError(w, http.StatusBadRequest, "Invalid format: "+format)
		return
	}
	upload := r.URL.Query().Get("upload") == "true"
	if upload && s.uploader == nil {
		writeJSONError(w, http.StatusBadRequest, "Uploads are not configured")
		return
	}

	sceneObj, err := createScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := fmt.Sprintf("%s-%d", req.Scene, time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, 64)
	logger := NewWebLogger(renderID, consoleChan)

	bp := integrator.NewBlinnPhongIntegrator(sceneObj.Lighting)
	rt, err := renderer.NewRaytracer(sceneObj, bp, sceneObj.SamplingConfig, renderer.DefaultRenderConfig(), logger)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, renderStats, err := rt.RenderParallel(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	logger.Printf("Render completed in %v (%.0f samples/s)\n", renderStats.Elapsed, renderStats.SamplesPerSecond())

	data, err := output.EncodePNG(img)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var uploadKey string
	if upload {
		uploadKey = renderID + ".png"
		if err := s.uploader.Upload(r.Context(), uploadKey, data, "image/png"); err != nil {
			writeJSONError(w, http.StatusBadGateway, "Upload failed: "+err.Error())
			return
		}
		logger.Printf("Uploaded %s (%d bytes)\n", uploadKey, len(data))
	}

	stats := Stats{
		Width:           rt.Width(),
		Height:          rt.Height(),
		TotalPixels:     renderStats.TotalPixels,
		TotalSamples:    renderStats.TotalSamples,
		SamplesPerPixel: renderStats.SamplesPerPixel,
		Tiles:           renderStats.Tiles,
		Workers:         renderStats.Workers,
		ElapsedMs:       renderStats.Elapsed.Milliseconds(),
		Luminance:       renderer.CalculateAverageLuminance(img),
	}

	if format == "json" {
		close(consoleChan)
		var console []ConsoleMessage
		for msg := range consoleChan {
			console = append(console, msg)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RenderResponse{
			ImageData: base64.StdEncoding.EncodeToString(data),
			Stats:     stats,
			Console:   console,
			UploadKey: uploadKey,
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Render-Width", strconv.Itoa(stats.Width))
	w.Header().Set("X-Render-Height", strconv.Itoa(stats.Height))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.SamplesPerPixel))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.ElapsedMs, 10))
	if uploadKey != "" {
		w.Header().Set("X-Upload-Key", uploadKey)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
