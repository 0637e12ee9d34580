package user

type User struct {
	ID       int64  `json:"id" db:"id"`
	Realname string `json:"realname" db:"realname"`
	Username string `json:"username" db:"username"`
	Password string `json:"password" db:"password"`
	Role     Role   `json:"role" db:"role"`
}
