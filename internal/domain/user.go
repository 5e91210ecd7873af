package domain

import "time"

type UserId = int64

// AdminUserId is the only identity allowed to author, edit or delete posts.
// The very first registered account gets id 1 and becomes the admin.
const AdminUserId UserId = 1

type User struct {
	Id        UserId
	Name      string
	Email     string
	PassHash  string
	CreatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Id == AdminUserId
}

func (u *User) IsAuthenticated() bool {
	return u != nil
}
