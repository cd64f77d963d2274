package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/integrator"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	InShadow     bool                   `json:"inShadow"`
	Color        [3]float64             `json:"color"` // Shaded color of the center ray
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains the hit of an inspection ray and the shape it belongs to
type InspectResult struct {
	Hit       bool
	HitRecord *core.HitRecord
	Shape     core.Shape
}

// inspectPixel casts the center ray of image pixel (pixelX, pixelY) and
// returns the nearest hit. pixelY counts from the top of the image.
func inspectPixel(sceneObj *scene.Scene, rt *renderer.Raytracer, pixelX, pixelY int) InspectResult {
	ray := rt.CenterRay(pixelX, rt.Height()-1-pixelY)

	hit, isHit := sceneObj.Hit(ray, 0, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false}
	}

	// Scene.Hit does not report the shape, so find the one at the same distance
	for _, shape := range sceneObj.Shapes {
		if shapeHit, ok := shape.Hit(ray, 0, math.Inf(1)); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Shape: shape}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// extractGeometryInfo describes the hit shape
func extractGeometryInfo(shape core.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties
	case *geometry.Triangle:
		properties["v0"] = [3]float64{geom.V0.X, geom.V0.Y, geom.V0.Z}
		properties["v1"] = [3]float64{geom.V1.X, geom.V1.Y, geom.V1.Z}
		properties["v2"] = [3]float64{geom.V2.X, geom.V2.Y, geom.V2.Z}
		return "triangle", properties
	case *geometry.Plane:
		properties["point"] = [3]float64{geom.Point.X, geom.Point.Y, geom.Point.Z}
		properties["normal"] = [3]float64{geom.Normal.X, geom.Normal.Y, geom.Normal.Z}
		return "plane", properties
	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseSceneRequest(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := createScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	bp := integrator.NewBlinnPhongIntegrator(sceneObj.Lighting)
	rt, err := renderer.NewRaytracer(sceneObj, bp, sceneObj.SamplingConfig, renderer.DefaultRenderConfig(), renderer.NewDiscardLogger())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if pixelX < 0 || pixelX >= rt.Width() || pixelY < 0 || pixelY >= rt.Height() {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, rt, pixelX, pixelY)

	w.Header().Set("Content-Type", "application/json")
	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false})
		return
	}

	hit := result.HitRecord
	geometryType, geometryProps := extractGeometryInfo(result.Shape)
	inShadow := bp.InShadow(hit.Point, sceneObj)
	var shaded core.Vec3
	if !inShadow {
		shaded = bp.Shade(hit)
	}

	response := InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		InShadow:     inShadow,
		Color:        [3]float64{shaded.X, shaded.Y, shaded.Z},
		Properties: map[string]interface{}{
			"geometry": geometryProps,
			"material": map[string]interface{}{
				"kd": [3]float64{hit.Kd.X, hit.Kd.Y, hit.Kd.Z},
				"ld": [3]float64{hit.Ld.X, hit.Ld.Y, hit.Ld.Z},
			},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
