package request

type CreatePostRequest struct {
	Title    string  `json:"title" validate:"required,min=3,max=200"`
	Content  string  `json:"content" validate:"required,max=5000"`
	Type     string  `json:"type" validate:"required,oneof=PLAYER_NEEDED TEAM_ANNOUNCEMENT GENERAL_DISCUSSION"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
}

type UpdatePostRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Content  *string `json:"content,omitempty" validate:"omitempty,max=5000"`
	Type     *string `json:"type,omitempty" validate:"omitempty,oneof=PLAYER_NEEDED TEAM_ANNOUNCEMENT GENERAL_DISCUSSION"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
