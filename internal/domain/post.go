package domain

type PostId = int64

type Post struct {
	Id       PostId
	AuthorId *UserId // nullable: the author row may be gone
	Author   string  // display name, resolved at query time
	Title    string
	Subtitle string
	// Published keeps the human-readable form shown on the page,
	// e.g. "August 31, 2026". Stamped once at creation, never edited.
	Published string
	Body      string
	ImgUrl    string
}

type PostCreationData struct {
	Title     string
	Subtitle  string
	Body      string
	ImgUrl    string
	Published string
	Author    UserId
}

// PostUpdateData carries the only fields the edit operation may touch.
// Id, Published and Author deliberately stay out of reach.
type PostUpdateData struct {
	Id       PostId
	Title    string
	Subtitle string
	Body     string
	ImgUrl   string
}
