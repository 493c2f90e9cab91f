package model

import (
	"fmt"
	"strings"
	"time"
)

// FileType identifies the format of an uploaded plan file.
type FileType string

// Supported plan file formats.
const (
	FileTypeDWG   FileType = "DWG"
	FileTypeDXF   FileType = "DXF"
	FileTypeOBJ   FileType = "OBJ"
	FileTypeFBX   FileType = "FBX"
	FileTypeSTL   FileType = "STL"
	FileTypeIFC   FileType = "IFC"
	FileTypeGLTF  FileType = "GLTF"
	FileTypeScene FileType = "SCENE"
)

// PlanStatus tracks a plan through the detection pipeline.
type PlanStatus string

// Plan lifecycle states.
const (
	PlanUploaded   PlanStatus = "UPLOADED"
	PlanProcessing PlanStatus = "PROCESSING"
	PlanProcessed  PlanStatus = "PROCESSED"
	PlanFailed     PlanStatus = "FAILED"
)

// Plan represents an uploaded building plan awaiting or past fixture
// detection.
type Plan struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	Name        string
	Description string
	FilePath    string
	FileType    FileType
	Status      PlanStatus
	FileSize    int64
}

// FileTypeFromPath derives the plan file type from the file extension.
func FileTypeFromPath(path string) (FileType, error) {
	idx := strings.LastIndex(path, ".")
	if idx < 0 || idx == len(path)-1 {
		return "", fmt.Errorf("no file extension in %q", path)
	}
	ext := strings.ToUpper(path[idx+1:])
	if ext == "JSON" {
		ext = string(FileTypeScene)
	}
	switch ft := FileType(ext); ft {
	case FileTypeDWG, FileTypeDXF, FileTypeOBJ, FileTypeFBX, FileTypeSTL, FileTypeIFC, FileTypeGLTF, FileTypeScene:
		return ft, nil
	default:
		return "", fmt.Errorf("unsupported plan file type %q", ext)
	}
}

// Vector3 is a point or extent in plan space, in meters.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BoundingBox is an axis-aligned min/max corner pair describing a 3D
// object's extent.
type BoundingBox struct {
	Min Vector3 `json:"min"`
	Max Vector3 `json:"max"`
}

// Dimensions holds fixture extents in meters. A zero value means the
// dimension is unknown; plan parsers rarely supply all three.
type Dimensions struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Depth  float64 `json:"depth,omitempty"`
}

// Complete reports whether all three dimensions are known.
func (d Dimensions) Complete() bool {
	return d.Width > 0 && d.Height > 0 && d.Depth > 0
}

// Empty reports whether no dimension is known.
func (d Dimensions) Empty() bool {
	return d.Width <= 0 && d.Height <= 0 && d.Depth <= 0
}

// DetectedProduct is a classified fixture stored against a plan. ProductID is
// set once the detection has been resolved to a catalog product; only
// resolved detections participate in quote generation.
type DetectedProduct struct {
	CreatedAt    time.Time
	ID           string
	PlanID       string
	ProductID    string
	DetectedType string
	Name         string
	BoundingBox  *BoundingBox
	Position     Vector3
	Dimensions   Dimensions
	Confidence   float64
}

// Resolved reports whether the detection is linked to a catalog product.
func (d *DetectedProduct) Resolved() bool {
	return d.ProductID != ""
}
