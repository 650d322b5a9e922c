package server

import (
	"net/http"
	"strconv"

	"github.com/df07/go-plane-raytracer/pkg/core"
	"github.com/df07/go-plane-raytracer/pkg/geometry"
	"github.com/df07/go-plane-raytracer/pkg/renderer"
	"github.com/df07/go-plane-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
	Counters     map[string]int64       `json:"counters"`
}

// InspectResult contains information about the primitive hit by an inspection ray
type InspectResult struct {
	Hit          bool
	Intersection core.Intersection
	Normal       core.Vec3
	FrontFace    bool
	Counters     *core.ThreadContext
}

// inspectPixel casts a ray through the center of the given pixel and returns
// the closest primitive it hits
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	if sceneObj.BVH == nil {
		sceneObj.Preprocess()
	}
	camera := renderer.NewSceneCamera(sceneObj.Camera, width, height)
	s := (float64(pixelX) + 0.5) / float64(width)
	t := 1 - (float64(pixelY)+0.5)/float64(height)
	ray := camera.GetRay(s, t)

	ctx := core.NewThreadContext(0)
	hit, normal, ok := sceneObj.Hit(ray, core.NewIStack(16), ctx)
	if !ok {
		return InspectResult{Counters: ctx}
	}
	return InspectResult{
		Hit:          true,
		Intersection: hit,
		Normal:       normal,
		FrontFace:    normal.Dot(ray.Direction) < 0,
		Counters:     ctx,
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(prim geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := prim.(type) {
	case *geometry.Plane:
		n := geom.NormalVector()
		properties["normal"] = [3]float64{n.X, n.Y, n.Z}
		properties["distance"] = geom.Distance()
		properties["transformed"] = geom.Trans() != nil
		properties["clipCount"] = len(geom.Clip())
		bbox := geom.BoundingBox()
		if !bbox.IsUnbounded() {
			properties["boundingBox"] = map[string]interface{}{
				"min": [3]float64{bbox.Min.X, bbox.Min.Y, bbox.Min.Z},
				"max": [3]float64{bbox.Max.X, bbox.Max.Y, bbox.Max.Z},
			}
		}
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Width == 0 {
		req.Width = sceneObj.Width
	}
	if req.Height == 0 {
		req.Height = sceneObj.Height
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Counters: result.Counters.Snapshot()})
		return
	}

	geometryType, properties := extractGeometryInfo(result.Intersection.Object.(geometry.Primitive))
	point := result.Intersection.Point
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        [3]float64{point.X, point.Y, point.Z},
		Normal:       [3]float64{result.Normal.X, result.Normal.Y, result.Normal.Z},
		Distance:     result.Intersection.Depth,
		FrontFace:    result.FrontFace,
		Properties:   properties,
		Counters:     result.Counters.Snapshot(),
	})
}
