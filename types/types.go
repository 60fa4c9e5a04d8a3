package types

// Info describes the provenance of a COCO annotation document
type Info struct {
	Description string   `json:"description,omitempty"`
	Version     string   `json:"version"`
	Year        int      `json:"year"`
	Contributor string   `json:"contributor,omitempty"`
	Source      string   `json:"source,omitempty"`
	URL         string   `json:"url,omitempty"`
	License     *License `json:"license,omitempty"`
}

// License identifies the license a document is distributed under
type License struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ImageRecord is one entry in the images list of a COCO document
type ImageRecord struct {
	ID       int64  `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// AnnotationRecord links one bounding box to an image and a category
// within the same document. BBox is [x, y, width, height] in pixels
// from the top-left origin.
type AnnotationRecord struct {
	ID         int64     `json:"id"`
	ImageID    int64     `json:"image_id"`
	CategoryID int64     `json:"category_id"`
	BBox       []float64 `json:"bbox"`
	Area       float64   `json:"area"`
	IsCrowd    int       `json:"iscrowd"`
}

// CategoryRecord is one entry in the categories list of a COCO document
type CategoryRecord struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory"`
}

// CocoFile is a batched COCO document holding every image, annotation
// and category for one split of the dataset
type CocoFile struct {
	Info        Info               `json:"info"`
	Images      []ImageRecord      `json:"images"`
	Annotations []AnnotationRecord `json:"annotations"`
	Categories  []CategoryRecord   `json:"categories"`
	Licenses    []License          `json:"licenses"`
}

// LabelMapEntry associates a small integer object id with a category
// name. Object id 0 is reserved for the background class.
type LabelMapEntry struct {
	ObjectID         int    `json:"object_id"`
	LabelID          int    `json:"label_id"`
	KeyboardShortcut string `json:"keyboard_shortcut,omitempty"`
	ObjectName       string `json:"object_name"`
}
