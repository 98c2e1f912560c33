package data

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/database"
	"github.com/lk2023060901/youtube-searcher-backend/internal/storage/biz"
	"gorm.io/gorm/clause"
)

// TagsJSON stores a tag list as a JSONB column
type TagsJSON []string

func (j *TagsJSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

func (j TagsJSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// ThumbnailsJSON stores the thumbnail variants as a JSONB column
type ThumbnailsJSON map[string]biz.Thumbnail

func (j *ThumbnailsJSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

func (j ThumbnailsJSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// SnippetPO represents the database model for stored result items.
// The composite primary key (response_id, video_id) makes replays of the
// same item idempotent.
type SnippetPO struct {
	ResponseID   string         `gorm:"column:response_id;type:uuid;primaryKey;index:idx_snippets_response_id"`
	VideoID      string         `gorm:"column:video_id;size:16;primaryKey"`
	PublishedAt  string         `gorm:"size:32"`
	ChannelID    string         `gorm:"size:64"`
	ChannelTitle string         `gorm:"size:255"`
	Title        string         `gorm:"size:512;not null"`
	Description  string         `gorm:"type:text"`
	Tags         TagsJSON       `gorm:"type:jsonb"`
	Thumbnails   ThumbnailsJSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (SnippetPO) TableName() string {
	return "snippets"
}

// SnippetRepo implements biz.SnippetRepo
type SnippetRepo struct {
	db *database.DB
}

func NewSnippetRepo(db *database.DB) biz.SnippetRepo {
	return &SnippetRepo{db: db}
}

// UpsertBatch writes all snippet rows of one response, updating rows that
// already exist under the same (response_id, video_id) key
func (r *SnippetRepo) UpsertBatch(ctx context.Context, snippets []*biz.Snippet) error {
	if len(snippets) == 0 {
		return nil
	}

	pos := make([]SnippetPO, len(snippets))
	for i, snippet := range snippets {
		pos[i] = *toSnippetPO(snippet)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "response_id"}, {Name: "video_id"}},
		UpdateAll: true,
	}).Create(&pos).Error
}

func (r *SnippetRepo) List(ctx context.Context) ([]*biz.Snippet, error) {
	var pos []SnippetPO
	if err := r.db.WithContext(ctx).Order("response_id").Find(&pos).Error; err != nil {
		return nil, err
	}

	snippets := make([]*biz.Snippet, len(pos))
	for i := range pos {
		snippets[i] = toSnippet(&pos[i])
	}
	return snippets, nil
}

func (r *SnippetRepo) ListByResponseID(ctx context.Context, responseID string) ([]*biz.Snippet, error) {
	var pos []SnippetPO
	if err := r.db.WithContext(ctx).
		Where("response_id = ?", responseID).
		Find(&pos).Error; err != nil {
		return nil, err
	}

	snippets := make([]*biz.Snippet, len(pos))
	for i := range pos {
		snippets[i] = toSnippet(&pos[i])
	}
	return snippets, nil
}

func toSnippetPO(snippet *biz.Snippet) *SnippetPO {
	return &SnippetPO{
		ResponseID:   snippet.ResponseID,
		VideoID:      snippet.VideoID,
		PublishedAt:  snippet.PublishedAt,
		ChannelID:    snippet.ChannelID,
		ChannelTitle: snippet.ChannelTitle,
		Title:        snippet.Title,
		Description:  snippet.Description,
		Tags:         TagsJSON(snippet.Tags),
		Thumbnails:   ThumbnailsJSON(snippet.Thumbnails),
	}
}

func toSnippet(po *SnippetPO) *biz.Snippet {
	return &biz.Snippet{
		ResponseID:   po.ResponseID,
		VideoID:      po.VideoID,
		PublishedAt:  po.PublishedAt,
		ChannelID:    po.ChannelID,
		ChannelTitle: po.ChannelTitle,
		Title:        po.Title,
		Description:  po.Description,
		Tags:         []string(po.Tags),
		Thumbnails:   map[string]biz.Thumbnail(po.Thumbnails),
	}
}
