package types

// ContentType classifies what a window holds
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentPDF   ContentType = "pdf"
	ContentURL   ContentType = "url"
	ContentEmbed ContentType = "embed"
	ContentUnset ContentType = ""
)

// DefaultBackground is the background token assigned to new windows
const DefaultBackground = "bg-white/80"

// BackgroundOptions lists the selectable window background tokens
var BackgroundOptions = []string{
	"bg-white/80", "bg-red-100/80", "bg-yellow-100/80",
	"bg-green-100/80", "bg-blue-100/80", "bg-purple-100/80",
}

// TextColorOptions lists the selectable text colors for the formatter
var TextColorOptions = []string{
	"#000000", "#FFFFFF", "#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#FF00FF", "#00FFFF",
}

// Window represents a single positioned content tile within a project.
// Coordinates are grid cells, not pixels; W and H are cell spans (>= 1).
type Window struct {
	ID          string      `json:"i"`
	X           int         `json:"x"`
	Y           int         `json:"y"`
	W           int         `json:"w"`
	H           int         `json:"h"`
	Content     string      `json:"content"`
	Background  string      `json:"bgColor"`
	ContentType ContentType `json:"contentType"`
}

// Project is a named collection of windows; the unit of save/load
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectRecord is the persisted shape of a project with its windows
type ProjectRecord struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Windows []Window `json:"windows"`
}

// LayoutItem carries position/size feedback emitted by the drag/resize
// layer for a single window
type LayoutItem struct {
	ID string `json:"i"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
	W  int    `json:"w"`
	H  int    `json:"h"`
}

// Profile is the persisted user profile returned by the store
type Profile struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Projects []ProjectRecord `json:"projects"`
}

// Stats contains board manager statistics
type Stats struct {
	TotalProjects   int     `json:"total_projects"`
	TotalWindows    int     `json:"total_windows"`
	ActiveProjectID *string `json:"active_project_id,omitempty"`
}
