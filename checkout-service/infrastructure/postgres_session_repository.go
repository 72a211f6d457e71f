package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/models"
)

// PostgresSessionRepository implements domain.SessionRepository using PostgreSQL
type PostgresSessionRepository struct {
	db *sqlx.DB
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository
func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// postgresSession represents a checkout session row
type postgresSession struct {
	ID                  string    `db:"id"`
	PaymentMethod       string    `db:"payment_method"`
	NotificationMethod  string    `db:"notification_method"`
	Products            []byte    `db:"products"`
	PaymentDetails      []byte    `db:"payment_details"`
	NotificationDetails []byte    `db:"notification_details"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// Save inserts a completed checkout session
func (r *PostgresSessionRepository) Save(ctx context.Context, session *domain.CheckoutSession) error {
	query := `
		INSERT INTO checkout_sessions (
			id, payment_method, notification_method, products,
			payment_details, notification_details, created_at, updated_at
		) VALUES (
			:id, :payment_method, :notification_method, :products,
			:payment_details, :notification_details, :created_at, :updated_at
		)`

	row, err := r.toPostgres(session)
	if err != nil {
		return err
	}

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return errors.Wrap(err, "failed to insert checkout session")
	}

	return nil
}

// FindByID finds a session by id; returns nil when not found
func (r *PostgresSessionRepository) FindByID(ctx context.Context, id models.ID) (*domain.CheckoutSession, error) {
	query := `
		SELECT id, payment_method, notification_method, products,
			   payment_details, notification_details, created_at, updated_at
		FROM checkout_sessions
		WHERE id = $1`

	var row postgresSession
	err := r.db.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find checkout session")
	}

	return r.toDomain(&row)
}

// FindAll returns every saved session, oldest first
func (r *PostgresSessionRepository) FindAll(ctx context.Context) ([]*domain.CheckoutSession, error) {
	query := `
		SELECT id, payment_method, notification_method, products,
			   payment_details, notification_details, created_at, updated_at
		FROM checkout_sessions
		ORDER BY created_at`

	var rows []postgresSession
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "failed to list checkout sessions")
	}

	sessions := make([]*domain.CheckoutSession, 0, len(rows))
	for i := range rows {
		session, err := r.toDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (r *PostgresSessionRepository) toPostgres(session *domain.CheckoutSession) (*postgresSession, error) {
	products, err := json.Marshal(session.SelectedProducts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal products")
	}

	paymentDetails, err := json.Marshal(session.PaymentDetails)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal payment details")
	}

	notificationDetails, err := json.Marshal(session.NotificationDetails)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal notification details")
	}

	return &postgresSession{
		ID:                  session.ID.String(),
		PaymentMethod:       session.PaymentMethod.String(),
		NotificationMethod:  session.NotificationMethod.String(),
		Products:            products,
		PaymentDetails:      paymentDetails,
		NotificationDetails: notificationDetails,
		CreatedAt:           session.Timestamps.CreatedAt,
		UpdatedAt:           session.Timestamps.UpdatedAt,
	}, nil
}

func (r *PostgresSessionRepository) toDomain(row *postgresSession) (*domain.CheckoutSession, error) {
	var products []domain.Product
	if err := json.Unmarshal(row.Products, &products); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal products")
	}

	var paymentDetails domain.MethodConfig
	if err := json.Unmarshal(row.PaymentDetails, &paymentDetails); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal payment details")
	}

	var notificationDetails domain.MethodConfig
	if err := json.Unmarshal(row.NotificationDetails, &notificationDetails); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal notification details")
	}

	return &domain.CheckoutSession{
		ID:                  models.ID(row.ID),
		PaymentMethod:       domain.PaymentMethodType(row.PaymentMethod),
		NotificationMethod:  domain.NotificationMethodType(row.NotificationMethod),
		SelectedProducts:    products,
		PaymentDetails:      paymentDetails,
		NotificationDetails: notificationDetails,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
	}, nil
}
