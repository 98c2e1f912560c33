package data

import (
	"context"
	"time"

	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/database"
	"github.com/lk2023060901/youtube-searcher-backend/internal/storage/biz"
	"gorm.io/gorm/clause"
)

// ResponsePO represents the database model for stored response headers
type ResponsePO struct {
	ResponseID     string `gorm:"column:response_id;type:uuid;primaryKey"`
	Kind           string `gorm:"size:64"`
	Etag           string `gorm:"size:64"`
	NextPageToken  string `gorm:"size:32"`
	RegionCode     string `gorm:"size:8"`
	TotalResults   int64  `gorm:"not null;default:0"`
	ResultsPerPage int64  `gorm:"not null;default:0"`

	Subject    string `gorm:"size:255;not null;index:idx_responses_subject"`
	QueryPart  string `gorm:"size:32"`
	QueryTerm  string `gorm:"size:255"`
	QueryType  string `gorm:"size:32"`
	MaxResults int64  `gorm:"not null;default:0"`

	RequestSubmittedAt time.Time `gorm:"not null"`
	ResponseReceivedAt time.Time `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ResponsePO) TableName() string {
	return "responses"
}

// ResponseRepo implements biz.ResponseRepo
type ResponseRepo struct {
	db *database.DB
}

func NewResponseRepo(db *database.DB) biz.ResponseRepo {
	return &ResponseRepo{db: db}
}

// Upsert writes a response header keyed by response_id; replaying an
// identical ID updates the row instead of duplicating it
func (r *ResponseRepo) Upsert(ctx context.Context, response *biz.Response) error {
	po := toResponsePO(response)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "response_id"}},
		UpdateAll: true,
	}).Create(po).Error
}

func (r *ResponseRepo) GetByID(ctx context.Context, responseID string) (*biz.Response, error) {
	var po ResponsePO
	if err := r.db.WithContext(ctx).Where("response_id = ?", responseID).First(&po).Error; err != nil {
		return nil, err
	}
	return toResponse(&po), nil
}

func (r *ResponseRepo) List(ctx context.Context) ([]*biz.Response, error) {
	var pos []ResponsePO
	if err := r.db.WithContext(ctx).Order("request_submitted_at").Find(&pos).Error; err != nil {
		return nil, err
	}

	responses := make([]*biz.Response, len(pos))
	for i := range pos {
		responses[i] = toResponse(&pos[i])
	}
	return responses, nil
}

func (r *ResponseRepo) ListBySubject(ctx context.Context, subject string) ([]*biz.Response, error) {
	var pos []ResponsePO
	if err := r.db.WithContext(ctx).
		Where("subject = ?", subject).
		Order("request_submitted_at").
		Find(&pos).Error; err != nil {
		return nil, err
	}

	responses := make([]*biz.Response, len(pos))
	for i := range pos {
		responses[i] = toResponse(&pos[i])
	}
	return responses, nil
}

func (r *ResponseRepo) ListSubjects(ctx context.Context) ([]string, error) {
	var subjects []string
	if err := r.db.WithContext(ctx).
		Model(&ResponsePO{}).
		Distinct("subject").
		Order("subject").
		Pluck("subject", &subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func toResponsePO(response *biz.Response) *ResponsePO {
	return &ResponsePO{
		ResponseID:     response.ResponseID,
		Kind:           response.Kind,
		Etag:           response.Etag,
		NextPageToken:  response.NextPageToken,
		RegionCode:     response.RegionCode,
		TotalResults:   response.TotalResults,
		ResultsPerPage: response.ResultsPerPage,

		Subject:    response.Subject,
		QueryPart:  response.QueryPart,
		QueryTerm:  response.QueryTerm,
		QueryType:  response.QueryType,
		MaxResults: response.MaxResults,

		RequestSubmittedAt: response.RequestSubmittedAt,
		ResponseReceivedAt: response.ResponseReceivedAt,
	}
}

func toResponse(po *ResponsePO) *biz.Response {
	return &biz.Response{
		ResponseID:     po.ResponseID,
		Kind:           po.Kind,
		Etag:           po.Etag,
		NextPageToken:  po.NextPageToken,
		RegionCode:     po.RegionCode,
		TotalResults:   po.TotalResults,
		ResultsPerPage: po.ResultsPerPage,

		Subject:    po.Subject,
		QueryPart:  po.QueryPart,
		QueryTerm:  po.QueryTerm,
		QueryType:  po.QueryType,
		MaxResults: po.MaxResults,

		RequestSubmittedAt: po.RequestSubmittedAt,
		ResponseReceivedAt: po.ResponseReceivedAt,
	}
}
