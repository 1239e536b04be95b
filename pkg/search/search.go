// Package search keeps a keyword index of posts in Elasticsearch.
package search

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"
)

const PostIndex = "blog_posts"

const postMapping = `{
  "mappings": {
    "properties": {
      "post_id":     {"type": "long"},
      "title":       {"type": "text"},
      "text":        {"type": "text"},
      "tags":        {"type": "keyword"},
      "user_id":     {"type": "long"},
      "category_id": {"type": "long"},
      "created_at":  {"type": "keyword"}
    }
  }
}`

// PostDoc 索引里的帖子
type PostDoc struct {
	PostId     int64    `json:"post_id"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Tags       []string `json:"tags"`
	UserId     int64    `json:"user_id"`
	CategoryId int64    `json:"category_id"`
	CreatedAt  string   `json:"created_at"`
}

var client *elastic.Client

// Init 连接 elasticsearch。addr 为空或连接失败时搜索退回 MySQL
func Init(addr string) {
	if addr == "" {
		return
	}
	c, err := elastic.NewClient(
		elastic.SetURL(addr),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		hlog.Warnf("elasticsearch unavailable, search falls back to mysql: %v", err)
		return
	}
	ctx := context.Background()
	exists, err := c.IndexExists(PostIndex).Do(ctx)
	if err != nil {
		hlog.Warnf("elasticsearch unavailable, search falls back to mysql: %v", err)
		return
	}
	if !exists {
		if _, err = c.CreateIndex(PostIndex).BodyString(postMapping).Do(ctx); err != nil {
			hlog.Warnf("create index %s failed: %v", PostIndex, err)
			return
		}
	}
	client = c
	hlog.Info("Connect Elasticsearch Success")
}

func Enabled() bool {
	return client != nil
}

func IndexPost(ctx context.Context, doc *PostDoc) error {
	if client == nil {
		return nil
	}
	_, err := client.Index().
		Index(PostIndex).
		Id(strconv.FormatInt(doc.PostId, 10)).
		BodyJson(doc).
		Do(ctx)
	return errors.Wrapf(err, "index post %d", doc.PostId)
}

func DeletePost(ctx context.Context, postId int64) error {
	if client == nil {
		return nil
	}
	_, err := client.Delete().Index(PostIndex).Id(strconv.FormatInt(postId, 10)).Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return errors.Wrapf(err, "delete post %d", postId)
}

// SearchPostIds 按关键字检索标题，返回命中的帖子 id 和总数
func SearchPostIds(ctx context.Context, keyword string, from, size int) ([]int64, int64, error) {
	if client == nil {
		return nil, 0, errors.New("elasticsearch is not configured")
	}
	res, err := client.Search().
		Index(PostIndex).
		Query(KeywordQuery(keyword)).
		FetchSource(false).
		From(from).Size(size).
		Do(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "search posts")
	}
	ids := make([]int64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		id, err := strconv.ParseInt(hit.Id, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, res.TotalHits(), nil
}

// KeywordQuery 标题优先，正文次之
func KeywordQuery(keyword string) elastic.Query {
	return elastic.NewMultiMatchQuery(keyword, "title^3", "text").
		Type("best_fields").
		Fuzziness("AUTO")
}

// querySource 用于测试和日志
func querySource(q elastic.Query) (string, error) {
	src, err := q.Source()
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(src)
	return string(b), err
}
