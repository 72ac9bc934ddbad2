package services

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/Vinayyy19/Furnista/common/errors"
	"github.com/Vinayyy19/Furnista/events"
	"github.com/Vinayyy19/Furnista/models"
	"github.com/Vinayyy19/Furnista/repository"
	"go.uber.org/zap"
)

type ContactService interface {
	SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, error)
	SubmitBulkOrder(ctx context.Context, req *models.BulkOrderRequest) (*models.ContactMessage, error)
	ListMessages(ctx context.Context, page, limit int) (*models.ContactList, error)
}

type contactServiceImpl struct {
	repo      repository.ContactRepo
	publisher events.Publisher
	logger    *zap.Logger
}

func NewContactService(repo repository.ContactRepo, publisher events.Publisher, logger *zap.Logger) ContactService {
	return &contactServiceImpl{repo: repo, publisher: publisher, logger: logger}
}

func (s *contactServiceImpl) SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, error) {
	return s.save(ctx, &models.ContactMessage{
		Name:        req.Name,
		Email:       req.Email,
		Mobile:      req.Mobile,
		Category:    req.Category,
		Description: req.Description,
		Pincode:     req.Pincode,
		Type:        models.ContactTypeContactUs,
	})
}

// SubmitBulkOrder stores the organisation as the category and the
// requirements as the description.
func (s *contactServiceImpl) SubmitBulkOrder(ctx context.Context, req *models.BulkOrderRequest) (*models.ContactMessage, error) {
	return s.save(ctx, &models.ContactMessage{
		Name:        req.Name,
		Email:       req.Email,
		Mobile:      req.Mobile,
		Category:    req.Organisation,
		Description: req.Requirements,
		Pincode:     req.Pincode,
		Type:        models.ContactTypeBulkOrder,
	})
}

func (s *contactServiceImpl) save(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	for _, field := range []*string{&msg.Name, &msg.Email, &msg.Mobile, &msg.Category, &msg.Description, &msg.Pincode} {
		*field = strings.TrimSpace(*field)
		if *field == "" {
			return nil, apperrors.Validation("All fields are required")
		}
	}
	msg.Email = strings.ToLower(msg.Email)
	msg.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, apperrors.Internal(err)
	}

	publish(ctx, s.publisher, s.logger, models.EventContactReceived, msg.ID.Hex(), models.ContactEventPayload{
		MessageID: msg.ID.Hex(),
		Type:      msg.Type,
		Email:     msg.Email,
	})
	s.logger.Info("Contact message received", zap.String("type", msg.Type), zap.String("id", msg.ID.Hex()))
	return msg, nil
}

func (s *contactServiceImpl) ListMessages(ctx context.Context, page, limit int) (*models.ContactList, error) {
	page, limit = normalizePage(page, limit)
	messages, total, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.ContactList{Messages: messages, Meta: models.NewMetaData(page, limit, total)}, nil
}
