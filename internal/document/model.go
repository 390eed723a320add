package document

// FormatVersion is written into every encoded document.
const FormatVersion = 1

// Document is the persisted form of a scene graph.
type Document struct {
	Version   int     `json:"version" yaml:"version"`
	IDCounter uint64  `json:"idCounter" yaml:"idCounter"`
	Roots     []*Node `json:"roots" yaml:"roots"`
}

type NodeType string

const (
	NodeTypeGroup NodeType = "group"
	NodeTypeLeaf  NodeType = "leaf"
)

type ShapeType string

const (
	ShapeTypeRectangle ShapeType = "rectangle"
	ShapeTypeEllipse   ShapeType = "ellipse"
	ShapeTypePath      ShapeType = "path"
)

// Node is a group or a leaf. Transform is [a, b, c, d, tx, ty].
type Node struct {
	ID        string    `json:"id" yaml:"id"`
	Type      NodeType  `json:"type" yaml:"type"`
	Transform []float64 `json:"transform" yaml:"transform,flow"`
	Children  []*Node   `json:"children,omitempty" yaml:"children,omitempty"`
	Shape     *Shape    `json:"shape,omitempty" yaml:"shape,omitempty"`
	Style     *Style    `json:"style,omitempty" yaml:"style,omitempty"`
}

// Shape carries the fields of every shape type; Type selects which apply.
type Shape struct {
	Type ShapeType `json:"type" yaml:"type"`

	// Rectangle
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`

	// Ellipse
	CX float64 `json:"cx,omitempty" yaml:"cx,omitempty"`
	CY float64 `json:"cy,omitempty" yaml:"cy,omitempty"`
	RX float64 `json:"rx,omitempty" yaml:"rx,omitempty"`
	RY float64 `json:"ry,omitempty" yaml:"ry,omitempty"`

	// Path. A missing Closed decodes as true.
	Commands []Command `json:"commands,omitempty" yaml:"commands,omitempty"`
	Closed   *bool     `json:"closed,omitempty" yaml:"closed,omitempty"`
}

// Command is one path command. Type is MoveTo, LineTo, CurveTo or ClosePath.
type Command struct {
	Type string  `json:"type" yaml:"type"`
	X1   float64 `json:"x1,omitempty" yaml:"x1,omitempty"`
	Y1   float64 `json:"y1,omitempty" yaml:"y1,omitempty"`
	X2   float64 `json:"x2,omitempty" yaml:"x2,omitempty"`
	Y2   float64 `json:"y2,omitempty" yaml:"y2,omitempty"`
	X    float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y    float64 `json:"y,omitempty" yaml:"y,omitempty"`
}

// Style is the paint of a leaf. An empty color means no paint.
type Style struct {
	Fill        string  `json:"fill,omitempty" yaml:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty" yaml:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth" yaml:"strokeWidth"`
}
