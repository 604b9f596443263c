package entity

import (
	"github.com/google/uuid"
)

type PostType string

const (
	PostTypePlayerNeeded      PostType = "PLAYER_NEEDED"
	PostTypeTeamAnnouncement  PostType = "TEAM_ANNOUNCEMENT"
	PostTypeGeneralDiscussion PostType = "GENERAL_DISCUSSION"
)

type Post struct {
	Base
	AuthorID uuid.UUID `db:"author_id"` // player id
	Title    string    `db:"title"`
	Content  string    `db:"content"`
	Type     PostType  `db:"type"`
	Location *string   `db:"location"`

	AuthorName   string `db:"author_name"`
	AuthorUserID uuid.UUID
	Comments     []*Comment
}

type Comment struct {
	Base
	PostID   uuid.UUID `db:"post_id"`
	AuthorID uuid.UUID `db:"author_id"` // player id
	Content  string    `db:"content"`

	AuthorName string `db:"author_name"`
}
