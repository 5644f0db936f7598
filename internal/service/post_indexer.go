// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"

	"entraide-go/internal/model"
	"entraide-go/pkg/es"
)

// esPostIndexer 是 PostIndexer 基于 Elasticsearch 的实现。
type esPostIndexer struct {
	indexName string
}

// NewESPostIndexer 创建一个基于 Elasticsearch 的帖子索引器。
func NewESPostIndexer(indexName string) PostIndexer {
	return &esPostIndexer{indexName: indexName}
}

func (i *esPostIndexer) Index(ctx context.Context, doc model.PostDocument) error {
	return es.IndexPost(ctx, i.indexName, doc)
}

func (i *esPostIndexer) Remove(ctx context.Context, postID uint) error {
	return es.DeletePost(ctx, i.indexName, postID)
}

func (i *esPostIndexer) Search(ctx context.Context, query string, size int) ([]model.PostSearchResult, error) {
	return es.SearchPosts(ctx, i.indexName, query, size)
}
