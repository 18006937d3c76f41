package dto

type CreateLessonRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Tone        string `json:"tone"`
	Privacy     string `json:"privacy"`
	AccessLevel string `json:"accessLevel"`
}

// UpdateLessonRequest uses pointers so absent fields are left untouched.
type UpdateLessonRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Tone        *string `json:"tone"`
	Privacy     *string `json:"privacy"`
	AccessLevel *string `json:"accessLevel"`
}

type AddCommentRequest struct {
	Text string `json:"text"`
}

type ToggleResponse struct {
	Toggled bool `json:"toggled"`
	Count   int  `json:"count"`
}
