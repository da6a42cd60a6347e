package models

// AspectRatio is the shape hint sent with image generation requests
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectPortrait  AspectRatio = "3:4"
	AspectLandscape AspectRatio = "4:3"
	AspectTall      AspectRatio = "9:16"
	AspectWide      AspectRatio = "16:9"
)

// DefaultAspectRatio is used when a visualize request does not name one
const DefaultAspectRatio = AspectWide

// IsValid checks the ratio against the supported set
func (a AspectRatio) IsValid() bool {
	switch a {
	case AspectSquare, AspectPortrait, AspectLandscape, AspectTall, AspectWide:
		return true
	default:
		return false
	}
}

// Dimensions returns the width:height parts of the ratio
func (a AspectRatio) Dimensions() (int, int) {
	switch a {
	case AspectSquare:
		return 1, 1
	case AspectPortrait:
		return 3, 4
	case AspectLandscape:
		return 4, 3
	case AspectTall:
		return 9, 16
	default:
		return 16, 9
	}
}

const (
	MinTripDuration = 1
	MaxTripDuration = 30
	MinTripBudget   = 500
)

// TripPlanParams describes the itinerary a visitor asks the planner for
type TripPlanParams struct {
	Type      string `json:"type" validate:"required"`
	Duration  int    `json:"duration" validate:"min=1,max=30"`
	Budget    int    `json:"budget" validate:"min=500"`
	Interests string `json:"interests"`
}

// DefaultTripPlan prefills the planner form
var DefaultTripPlan = TripPlanParams{
	Type:     RetreatTypes[0],
	Duration: 7,
	Budget:   3000,
}

// RetreatTypes are the preset itinerary types offered by the planner
var RetreatTypes = []string{
	"Yoga & Meditation",
	"Adventure & Nature",
	"Digital Detox",
	"Healing & Therapy",
	"Art & Creativity",
	"Leadership & Growth",
}

// AskRequest is a free-form question to the concierge
type AskRequest struct {
	Question string `json:"question" validate:"required"`
}

// ChatRequest is a message to the marketplace assistant
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// VisualizeRequest asks for an illustrative image of a prompt
type VisualizeRequest struct {
	Prompt      string      `json:"prompt" validate:"required"`
	AspectRatio AspectRatio `json:"aspectRatio"`
}

// Visual is a generated image encoded as a data URL
type Visual struct {
	DataURL  string      `json:"dataUrl"`
	MIMEType string      `json:"mimeType"`
	Ratio    AspectRatio `json:"aspectRatio"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
}
