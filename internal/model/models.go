package model

// All 返回需要建表的全部模型
func All() []any {
	return []any{
		&User{},
		&News{},
		&Interaction{},
		&Bookmark{},
		&UserFollow{},
		&Comment{},
		&CommentLike{},
		&Report{},
	}
}
