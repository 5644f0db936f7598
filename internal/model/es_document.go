// Package model 定义了与数据库表对应的 Go 结构体。
package model

// PostDocument 代表存储在 Elasticsearch 中的帖子文档结构。
// 帖子在创建、更新、发布时被索引，删除时从索引移除。
type PostDocument struct {
	PostID    uint   `json:"post_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	AuthorID  uint   `json:"author_id"`
	Published bool   `json:"published"`
}

// PostSearchResult 定义了返回给前端的帖子搜索结果结构。
type PostSearchResult struct {
	PostID   uint    `json:"postId"`
	Title    string  `json:"title"`
	Snippet  string  `json:"snippet"`
	AuthorID uint    `json:"authorId"`
	Score    float64 `json:"score"`
}
