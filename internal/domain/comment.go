package domain

type CommentId = int64

type Comment struct {
	Id          CommentId
	Body        string
	AuthorId    UserId
	AuthorName  string
	AuthorEmail string // used for avatar generation only, never rendered
	PostId      PostId
}

type CommentCreationData struct {
	Body   string
	Author UserId
	Post   PostId
}
